package db

import (
	"path/filepath"
	"testing"
)

func TestMigrateUp_Idempotent(t *testing.T) {
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "migrate_test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	defer conn.Close()

	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp() error = %v, want nil", err)
	}
	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp() second run error = %v, want nil", err)
	}

	statuses, err := MigrateStatus(conn)
	if err != nil {
		t.Fatalf("MigrateStatus() error = %v, want nil", err)
	}
	if len(statuses) == 0 {
		t.Fatal("MigrateStatus() returned no migrations")
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("migration %s not applied", s.ID)
		}
		if s.AppliedAt == nil {
			t.Errorf("migration %s has no applied_at timestamp", s.ID)
		}
	}
}

func TestMigrateStatus_BeforeApply(t *testing.T) {
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "status_test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	defer conn.Close()

	statuses, err := MigrateStatus(conn)
	if err != nil {
		t.Fatalf("MigrateStatus() error = %v, want nil", err)
	}
	for _, s := range statuses {
		if s.Applied {
			t.Errorf("migration %s reported applied before MigrateUp", s.ID)
		}
	}
}

func TestOpen_RejectsUnknownScheme(t *testing.T) {
	if _, err := Open("mysql://root@localhost/treeline"); err == nil {
		t.Error("Open(mysql URL) error = nil, want unsupported scheme error")
	}
}
