package attendance

import (
	"fmt"
	"testing"
	"time"

	"github.com/Intechlligent1/AttendanceSystem/storage"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

func newTestBackends(t *testing.T) model.Backends {
	t.Helper()
	s, err := storage.NewStorage(
		storage.Config{
			Driver: storage.DriverSQLite,
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		},
	)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return s.Backends()
}

func TestScanResolverRecordsKnownBadge(t *testing.T) {
	backs := newTestBackends(t)
	if _, err := backs.Roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resolver := NewScanResolver(backs.Roster, backs.Ledger)
	scanTime := time.Date(2025, 7, 14, 9, 0, 1, 0, time.UTC)
	resolver.now = func() time.Time { return scanTime }

	// Lowercase input resolves the uppercase roster entry
	result, err := resolver.Resolve("ab12")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !result.Registered || result.Name != "Ada" {
		t.Errorf("unexpected result: %+v", result)
	}
	if !result.Timestamp.Equal(scanTime) {
		t.Errorf("expected server clock timestamp %v, got %v", scanTime, result.Timestamp)
	}

	count, err := backs.Ledger.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 ledger event, got %d", count)
	}
}

func TestScanResolverRejectsUnknownBadge(t *testing.T) {
	backs := newTestBackends(t)
	resolver := NewScanResolver(backs.Roster, backs.Ledger)

	for _, code := range []string{"ZZ99", "", "   "} {
		result, err := resolver.Resolve(code)
		if err != nil {
			t.Fatalf("resolve(%q) failed: %v", code, err)
		}
		if result.Registered {
			t.Errorf("resolve(%q) should have been rejected", code)
		}
	}

	count, err := backs.Ledger.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected scans must not write events, found %d", count)
	}
}
