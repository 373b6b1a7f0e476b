package model

import (
	"strings"
	"time"
)

// Identity represents one enrolled person on the roster.
type Identity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Name is the display name; it does not have to be unique.
	Name string `json:"name"`
	// BadgeCode is the normalized code read from the physical card.
	// It is unique across all identities.
	BadgeCode string `gorm:"uniqueIndex" json:"badge_code"`
}

// AddIdentity is the request payload for creating or updating a roster entry.
type AddIdentity struct {
	Name      string `json:"name"`
	BadgeCode string `json:"badge_code"`
}

// NormalizeBadgeCode canonicalizes a raw badge code. Every write and every
// lookup must go through this function so the two paths cannot drift.
func NormalizeBadgeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IdentityStore abstracts roster CRUD and badge resolution used by handlers.
type IdentityStore interface {
	// List returns all roster entries, most recently created first
	List() ([]Identity, error)
	// Create adds a roster entry; the badge code is normalized before the
	// uniqueness check
	Create(req AddIdentity) (*Identity, error)
	// Get returns a roster entry by its ID
	Get(id uint) (*Identity, error)
	// Update changes name and/or badge code of an existing entry
	Update(id uint, req AddIdentity) (*Identity, error)
	// Delete removes a roster entry together with its ledger events
	Delete(id uint) error
	// FindByBadge resolves a badge code to a roster entry; it returns
	// (nil, nil) when the code is unknown
	FindByBadge(code string) (*Identity, error)
	// Count returns the number of roster entries
	Count() (int64, error)
}
