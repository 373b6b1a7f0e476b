package storage

import (
	"testing"
	"time"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

func TestLedgerListJoinedNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	roster := s.RosterStorage()
	ledger := s.LedgerStorage()

	ada, err := roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	grace, err := roster.Create(model.AddIdentity{Name: "Grace", BadgeCode: "CD34"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	base := time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)
	// Deliberately appended out of chronological order
	if _, err = ledger.Append(ada.ID, base.Add(time.Hour)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err = ledger.Append(grace.ID, base); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err = ledger.Append(ada.ID, base.Add(2*time.Hour)); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	rows, err := ledger.ListJoined()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "Ada" || !rows[0].Timestamp.Equal(base.Add(2*time.Hour)) {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[2].Name != "Grace" || rows[2].BadgeCode != "CD34" {
		t.Errorf("unexpected last row: %+v", rows[2])
	}
}

func TestLedgerListJoinedBreaksTimestampTiesByRecency(t *testing.T) {
	s := newTestStorage(t)
	roster := s.RosterStorage()
	ledger := s.LedgerStorage()

	ada, err := roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	grace, err := roster.Create(model.AddIdentity{Name: "Grace", BadgeCode: "CD34"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ts := time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)
	if _, err = ledger.Append(ada.ID, ts); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err = ledger.Append(grace.ID, ts); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	rows, err := ledger.ListJoined()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Grace" {
		t.Errorf("latest append should win the tie: %+v", rows)
	}
}

func TestLedgerQueryRangeIsInclusive(t *testing.T) {
	s := newTestStorage(t)
	roster := s.RosterStorage()
	ledger := s.LedgerStorage()

	ada, err := roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC)
	for _, ts := range []time.Time{
		from.Add(-time.Second), // just before the window
		from,                   // lower boundary
		from.Add(12 * time.Hour),
		to,                  // upper boundary
		to.Add(time.Second), // just after the window
	} {
		if _, err = ledger.Append(ada.ID, ts); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	rows, err := ledger.QueryRange(from, to)
	if err != nil {
		t.Fatalf("range query failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows in window, got %d", len(rows))
	}
	if !rows[0].Timestamp.Equal(to) || !rows[2].Timestamp.Equal(from) {
		t.Errorf("boundary rows missing or misordered: %+v", rows)
	}
}

func TestLedgerAppendTruncatesToSeconds(t *testing.T) {
	s := newTestStorage(t)
	roster := s.RosterStorage()
	ledger := s.LedgerStorage()

	ada, err := roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	event, err := ledger.Append(ada.ID, time.Date(2025, 7, 14, 9, 0, 1, 500_000_000, time.UTC))
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if event.Timestamp.Nanosecond() != 0 {
		t.Errorf("timestamp not truncated: %v", event.Timestamp)
	}
}
