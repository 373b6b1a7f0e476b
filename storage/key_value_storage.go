package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// KeyValueStorage implements model.KeyValueStore using GORM.
type KeyValueStorage struct {
	db *gorm.DB
}

// KeyValue provides an accessor for scoped key-value settings.
func (s *Storage) KeyValue() *KeyValueStorage {
	return &KeyValueStorage{db: s.db}
}

// Get returns the raw JSON value for a (scope, key), or (nil, nil) when the
// key is not set.
//
// Conditions are passed as a map so GORM quotes the column names per dialect
// ("key" is a reserved word in MySQL) and the zero-value global scope is not
// dropped the way struct conditions would.
func (s *KeyValueStorage) Get(scope, key string) (datatypes.JSON, error) {
	var kv model.KeyValue
	err := s.db.Where(map[string]any{"scope": scope, "key": key}).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "settings: get failed")
	}
	return kv.Value, nil
}

// GetAs unmarshals the value for (scope, key) into out and reports whether
// the key was set. out must be a pointer.
func (s *KeyValueStorage) GetAs(scope, key string, out any) (bool, error) {
	raw, err := s.Get(scope, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, "settings: value has unexpected type")
	}
	return true, nil
}

// Set stores or replaces the JSON value for a (scope, key).
func (s *KeyValueStorage) Set(scope, key string, value datatypes.JSON) error {
	err := s.db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		},
	).Create(
		&model.KeyValue{
			Scope: scope,
			Key:   key,
			Value: value,
		},
	).Error
	return errors.Wrap(err, "settings: set failed")
}

// SetAny marshals v to JSON and stores it at (scope, key).
func (s *KeyValueStorage) SetAny(scope, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "settings: value not serializable")
	}
	return s.Set(scope, key, raw)
}

// Delete removes a (scope, key) pair; deleting an absent key is not an error.
func (s *KeyValueStorage) Delete(scope, key string) error {
	err := s.db.Where(map[string]any{"scope": scope, "key": key}).Delete(&model.KeyValue{}).Error
	return errors.Wrap(err, "settings: delete failed")
}
