package storage

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// LedgerStorage implements the append-only attendance ledger. Events are
// never updated or deleted here; the only destructive path is the cascading
// roster delete in IdentityStorage.
type LedgerStorage struct {
	db *gorm.DB
}

// Append records one accepted scan. The identity reference is taken as
// given; resolution happens before the ledger is touched. The timestamp is
// stored in UTC with second precision.
func (s *LedgerStorage) Append(identityID uint, ts time.Time) (*model.AttendanceEvent, error) {
	event := &model.AttendanceEvent{
		IdentityID: identityID,
		Timestamp:  ts.UTC().Truncate(time.Second),
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, errors.Wrap(err, "ledger: append failed")
	}
	return event, nil
}

// joined builds the event/roster join in the ledger's natural order:
// timestamp descending, with the event ID as tiebreaker so the most recent
// append always comes first.
func (s *LedgerStorage) joined() *gorm.DB {
	return s.db.Model(&model.AttendanceEvent{}).
		Select("identities.name AS name, identities.badge_code AS badge_code, attendance_events.timestamp AS timestamp").
		Joins("JOIN identities ON identities.id = attendance_events.identity_id").
		Order("attendance_events.timestamp DESC, attendance_events.id DESC")
}

// QueryRange returns the joined rows whose timestamp lies within the
// inclusive window [from, to].
func (s *LedgerStorage) QueryRange(from, to time.Time) ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	err := s.joined().
		Where("attendance_events.timestamp >= ? AND attendance_events.timestamp <= ?", from.UTC(), to.UTC()).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "ledger: range query failed")
	}
	return rows, nil
}

// ListJoined returns all joined rows, newest first.
func (s *LedgerStorage) ListJoined() ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	if err := s.joined().Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "ledger: list failed")
	}
	return rows, nil
}

// Count returns the number of recorded events.
func (s *LedgerStorage) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.AttendanceEvent{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "ledger: count failed")
	}
	return count, nil
}
