package model

import (
	"gorm.io/datatypes"
)

const (
	KeyValueScopeGlobal    = ""
	KeyValueScopeIngestion = "ingestion"
	KeyValueScopeReporting = "reporting"

	// KeyValueKeyEnabled toggles the scan ingestion endpoint.
	KeyValueKeyEnabled = "enabled"
	// KeyValueKeyDefaultMonth / KeyValueKeyDefaultYear preselect the
	// reporting window in the operator UI.
	KeyValueKeyDefaultMonth = "default_month"
	KeyValueKeyDefaultYear  = "default_year"
)

// KeyValue stores scoped application settings.
//
// Values are serialized using GORM's json serializer, which leverages the
// database JSON type when available (e.g., PostgreSQL, MySQL) and falls back
// to TEXT in others (e.g., SQLite). The `Scope` field enables namespacing to
// avoid key collisions across different features.
type KeyValue struct {
	CreatedAt int `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int `gorm:"autoUpdateTime" json:"updated_at"`

	// Scope allows grouping keys by namespace; empty string is global scope.
	Scope string `gorm:"primaryKey" json:"scope"`

	// Key is the identifier within a scope.
	Key string `gorm:"primaryKey" json:"key"`

	// Value is stored as native JSON/JSONB (where supported) using datatypes.JSON.
	Value datatypes.JSON `json:"value"`
}

// KeyValueStore defines the operations for scoped key-value settings.
// Implementations must honor the uniqueness of (scope, key) and store values
// as JSON.
type KeyValueStore interface {
	// Get retrieves the value for a (scope, key). Returns (nil, nil) if not found.
	Get(scope, key string) (datatypes.JSON, error)

	// GetAs retrieves and unmarshals the value into out; returns (false, nil)
	// if the key is not set.
	GetAs(scope, key string, out any) (bool, error)

	// Set stores/replaces the value for a (scope, key).
	Set(scope, key string, value datatypes.JSON) error

	// SetAny marshals v to JSON and stores it at (scope, key).
	SetAny(scope, key string, v any) error

	// Delete removes the entry for a (scope, key). No error if missing.
	Delete(scope, key string) error
}
