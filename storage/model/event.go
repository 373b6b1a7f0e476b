package model

import (
	"time"
)

// TimestampLayout is the wire format for event timestamps: what the scanning
// device gets back and what the CSV export writes.
const TimestampLayout = "2006-01-02 15:04:05"

// AttendanceEvent stores one accepted badge scan. Events are immutable once
// created; the ledger only ever appends.
type AttendanceEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// IdentityID references the roster entry resolved at scan time. The
	// ledger does not own the identity and does not re-verify it.
	IdentityID uint `gorm:"index" json:"identity_id"`
	// Timestamp is the UTC instant, second precision, assigned by the
	// server when the event was accepted.
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// AttendanceRecord is an AttendanceEvent joined with the roster entry it
// references, as consumed by the log view, reports and the CSV export.
type AttendanceRecord struct {
	Name      string    `json:"name"`
	BadgeCode string    `json:"badge_code"`
	Timestamp time.Time `json:"timestamp"`
}

// LedgerStore abstracts the append-only attendance ledger.
type LedgerStore interface {
	// Append records one accepted scan and returns the stored event
	Append(identityID uint, ts time.Time) (*AttendanceEvent, error)
	// QueryRange returns the joined rows with from <= timestamp <= to,
	// ordered by timestamp descending
	QueryRange(from, to time.Time) ([]AttendanceRecord, error)
	// ListJoined returns all joined rows, ordered by timestamp descending
	ListJoined() ([]AttendanceRecord, error)
	// Count returns the number of recorded events
	Count() (int64, error)
}
