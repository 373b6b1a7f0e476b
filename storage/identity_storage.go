package storage

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// IdentityStorage provides CRUD access to roster entries.
type IdentityStorage struct {
	db *gorm.DB
}

// List returns all roster entries ordered by creation, most recent first.
func (s *IdentityStorage) List() ([]model.Identity, error) {
	var items []model.Identity
	if err := s.db.Order("id DESC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "roster: list failed")
	}
	return items, nil
}

// Create adds a roster entry. The badge code is normalized before the
// uniqueness check and before storage.
func (s *IdentityStorage) Create(req model.AddIdentity) (*model.Identity, error) {
	code := model.NormalizeBadgeCode(req.BadgeCode)
	if code == "" {
		return nil, errors.New("roster: badge code is required")
	}
	item := &model.Identity{
		Name:      req.Name,
		BadgeCode: code,
	}
	if err := s.db.Create(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("badge code already registered: %s", code)
		}
		return nil, errors.Wrap(err, "roster: create failed")
	}
	return item, nil
}

// Get returns a roster entry by its ID.
func (s *IdentityStorage) Get(id uint) (*model.Identity, error) {
	var item model.Identity
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("roster entry not found: %d", id)
		}
		return nil, errors.Wrap(err, "roster: get failed")
	}
	return &item, nil
}

// Update changes the name and badge code of an existing roster entry. The
// unique index excludes the record itself, so saving an unchanged badge code
// is not a conflict.
func (s *IdentityStorage) Update(id uint, req model.AddIdentity) (*model.Identity, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	code := model.NormalizeBadgeCode(req.BadgeCode)
	if code == "" {
		return nil, errors.New("roster: badge code is required")
	}
	item.Name = req.Name
	item.BadgeCode = code
	if err = s.db.Save(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("badge code already registered: %s", code)
		}
		return nil, errors.Wrap(err, "roster: update failed")
	}
	return item, nil
}

// Delete removes a roster entry. The entry's attendance events are removed
// in the same transaction so the ledger never holds dangling references.
func (s *IdentityStorage) Delete(id uint) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			var item model.Identity
			if err := tx.First(&item, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.NotFoundErrorFmt("roster entry not found: %d", id)
				}
				return errors.Wrap(err, "roster: get failed")
			}
			if err := tx.Where("identity_id = ?", item.ID).Delete(&model.AttendanceEvent{}).Error; err != nil {
				return errors.Wrap(err, "roster: delete events failed")
			}
			if err := tx.Delete(&item).Error; err != nil {
				return errors.Wrap(err, "roster: delete failed")
			}
			return nil
		},
	)
}

// FindByBadge resolves a badge code to a roster entry. It returns (nil, nil)
// when the normalized code matches no entry.
func (s *IdentityStorage) FindByBadge(code string) (*model.Identity, error) {
	normalized := model.NormalizeBadgeCode(code)
	if normalized == "" {
		return nil, nil
	}
	var item model.Identity
	if err := s.db.Where("badge_code = ?", normalized).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "roster: badge lookup failed")
	}
	return &item, nil
}

// Count returns the number of roster entries.
func (s *IdentityStorage) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.Identity{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "roster: count failed")
	}
	return count, nil
}

// isUniqueConstraintError performs a cheap check across supported drivers.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	// sqlite | mysql | postgres common markers
	if
	// SQLite
	(containsAny(msg, "UNIQUE constraint failed", "constraint failed")) ||
		// MySQL
		(containsAny(msg, "Duplicate entry", "Error 1062")) ||
		// Postgres
		(containsAny(msg, "duplicate key value", "violates unique constraint")) {
		return true
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
