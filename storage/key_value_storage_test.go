package storage

import (
	"testing"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

func TestKeyValueRoundTrip(t *testing.T) {
	kv := newTestStorage(t).KeyValue()

	if err := kv.SetAny(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, false); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var enabled bool
	found, err := kv.GetAs(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, &enabled)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || enabled {
		t.Errorf("expected stored false, got found=%v enabled=%v", found, enabled)
	}

	// Upsert replaces the previous value
	if err = kv.SetAny(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err = kv.GetAs(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, &enabled); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !enabled {
		t.Errorf("expected upsert to replace value")
	}
}

func TestKeyValueGlobalScope(t *testing.T) {
	kv := newTestStorage(t).KeyValue()

	// The global scope is the empty string; lookups and deletes must not
	// drop it from the query conditions.
	if err := kv.SetAny(model.KeyValueScopeGlobal, "motd", "hello"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := kv.SetAny(model.KeyValueScopeIngestion, "motd", "other"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got string
	found, err := kv.GetAs(model.KeyValueScopeGlobal, "motd", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || got != "hello" {
		t.Errorf("global scope lookup returned found=%v got=%q", found, got)
	}

	if err = kv.Delete(model.KeyValueScopeGlobal, "motd"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	found, err = kv.GetAs(model.KeyValueScopeGlobal, "motd", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Errorf("global scope entry should be gone")
	}
	// The scoped entry with the same key is untouched
	found, err = kv.GetAs(model.KeyValueScopeIngestion, "motd", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || got != "other" {
		t.Errorf("scoped entry lost: found=%v got=%q", found, got)
	}
}

func TestKeyValueMissingAndDelete(t *testing.T) {
	kv := newTestStorage(t).KeyValue()

	var month int
	found, err := kv.GetAs(model.KeyValueScopeReporting, model.KeyValueKeyDefaultMonth, &month)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Errorf("expected missing key to report not found")
	}

	if err = kv.SetAny(model.KeyValueScopeReporting, model.KeyValueKeyDefaultMonth, 7); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err = kv.Delete(model.KeyValueScopeReporting, model.KeyValueKeyDefaultMonth); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	found, err = kv.GetAs(model.KeyValueScopeReporting, model.KeyValueKeyDefaultMonth, &month)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Errorf("expected key to be gone after delete")
	}
	// Deleting again is not an error
	if err = kv.Delete(model.KeyValueScopeReporting, model.KeyValueKeyDefaultMonth); err != nil {
		t.Errorf("repeated delete failed: %v", err)
	}
}
