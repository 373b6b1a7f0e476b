package cache

import (
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := New()

	type payload struct {
		Count int `json:"count"`
	}
	if err := c.Set("stats", payload{Count: 42}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got payload
	set, err := c.Get("stats", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !set || got.Count != 42 {
		t.Errorf("unexpected cached value: set=%v got=%+v", set, got)
	}

	set, err = c.Get("missing", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if set {
		t.Errorf("expected miss for unknown key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := New()

	if err := c.Set("short", "value", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	var got string
	set, err := c.Get("short", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if set {
		t.Errorf("expected entry to have expired")
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := New()

	if err := c.Set("key", 1, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := c.Set("key", 2, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var got int
	if _, err := c.Get("key", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected overwritten value 2, got %d", got)
	}
}
