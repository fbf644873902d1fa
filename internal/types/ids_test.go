package types

import (
	"testing"
	"time"
)

func TestNewRevisionID_Ordering(t *testing.T) {
	first := NewRevisionID()
	time.Sleep(2 * time.Millisecond)
	second := NewRevisionID()

	// UUIDv7 string order follows creation order.
	if !(string(first) < string(second)) {
		t.Errorf("revision IDs not time-ordered: %s >= %s", first, second)
	}
}

func TestParseRevisionID(t *testing.T) {
	id := NewRevisionID()
	parsed, err := ParseRevisionID(string(id))
	if err != nil {
		t.Fatalf("ParseRevisionID() error = %v, want nil", err)
	}
	if parsed != id {
		t.Errorf("ParseRevisionID() = %s, want %s", parsed, id)
	}

	if _, err := ParseRevisionID("not-a-uuid"); err == nil {
		t.Error("ParseRevisionID(malformed) error = nil, want error")
	}
}

func TestRevisionIDTime(t *testing.T) {
	before := time.Now().Add(-time.Minute)
	id := NewRevisionID()
	after := time.Now().Add(time.Minute)

	ts := RevisionIDTime(id)
	if ts.Before(before) || ts.After(after) {
		t.Errorf("RevisionIDTime() = %v, want within a minute of now", ts)
	}

	if !RevisionIDTime(RevisionID("garbage")).IsZero() {
		t.Error("RevisionIDTime(garbage) != zero time")
	}
}
