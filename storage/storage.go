package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db         *gorm.DB
	userParams Argon2idParams
}

var models = []any{
	&model.Identity{},
	&model.AttendanceEvent{},
	&model.User{},
	&model.KeyValue{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Fill user hash params with defaults if zero values
	params := config.UsersHash
	if params.Time == 0 {
		params = defaultArgon2idParams()
	}

	return &Storage{
		db:         db,
		userParams: params,
	}, nil
}

// Backends returns the grouped storage interfaces backed by this Storage.
func (s *Storage) Backends() model.Backends {
	return model.Backends{
		Roster: s.RosterStorage(),
		Ledger: s.LedgerStorage(),
		Users:  s.UsersStorage(),
		KV:     s.KeyValue(),
	}
}

// RosterStorage returns an IdentityStorage
func (s *Storage) RosterStorage() *IdentityStorage {
	return &IdentityStorage{db: s.db}
}

// LedgerStorage returns a LedgerStorage
func (s *Storage) LedgerStorage() *LedgerStorage {
	return &LedgerStorage{db: s.db}
}
