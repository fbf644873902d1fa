package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/keelworks/treeline/internal/types"
)

func newTestStore(t *testing.T) (*sqlx.DB, *TupleStore) {
	t.Helper()

	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "treeline_test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp() error = %v, want nil", err)
	}

	store, err := NewTupleStore(conn)
	if err != nil {
		t.Fatalf("NewTupleStore() error = %v, want nil", err)
	}
	return conn, store
}

func TestTupleStore_SaveAndLoad(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	saved := []types.Tuple{
		{Path: "/rules/single/tables", Value: "- ds_0.t_single\n"},
		{Path: "/rules/sharding/tables/t_order", Value: "actualDataNodes: ds_0.t_order\n"},
	}
	revision, err := store.SaveSnapshot(ctx, "logic_db", saved)
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v, want nil", err)
	}
	if _, err := types.ParseRevisionID(string(revision)); err != nil {
		t.Errorf("revision %q is not a valid UUID: %v", revision, err)
	}

	loaded, err := store.LoadSnapshot(ctx, "logic_db")
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v, want nil", err)
	}
	// LoadSnapshot orders by path.
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	if loaded[0].Path != "/rules/sharding/tables/t_order" {
		t.Errorf("loaded[0].Path = %q, want sharding table first", loaded[0].Path)
	}
	if loaded[1].Value != "- ds_0.t_single\n" {
		t.Errorf("loaded[1].Value = %q, want stored value", loaded[1].Value)
	}
}

func TestTupleStore_LoadMissingNamespace(t *testing.T) {
	_, store := newTestStore(t)

	_, err := store.LoadSnapshot(context.Background(), "nowhere")
	if !errors.Is(err, types.ErrSnapshotNotFound) {
		t.Errorf("LoadSnapshot() error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestTupleStore_SaveReplacesWholesale(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	first := []types.Tuple{
		{Path: "/rules/single/tables", Value: "old"},
		{Path: "/rules/single/default_data_source", Value: "ds_0"},
	}
	if _, err := store.SaveSnapshot(ctx, "logic_db", first); err != nil {
		t.Fatalf("SaveSnapshot(first) error = %v, want nil", err)
	}

	second := []types.Tuple{{Path: "/rules/single/tables", Value: "new"}}
	if _, err := store.SaveSnapshot(ctx, "logic_db", second); err != nil {
		t.Fatalf("SaveSnapshot(second) error = %v, want nil", err)
	}

	loaded, err := store.LoadSnapshot(ctx, "logic_db")
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v, want nil", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("len(loaded) = %d, want 1 (old tuples must be gone)", len(loaded))
	}
	if loaded[0].Value != "new" {
		t.Errorf("loaded[0].Value = %q, want %q", loaded[0].Value, "new")
	}
}

func TestTupleStore_NamespacesAreIsolated(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveSnapshot(ctx, "db_a", []types.Tuple{{Path: "/rules/single/tables", Value: "a"}}); err != nil {
		t.Fatalf("SaveSnapshot(db_a) error = %v, want nil", err)
	}
	if _, err := store.SaveSnapshot(ctx, "db_b", []types.Tuple{{Path: "/rules/single/tables", Value: "b"}}); err != nil {
		t.Fatalf("SaveSnapshot(db_b) error = %v, want nil", err)
	}

	loaded, err := store.LoadSnapshot(ctx, "db_a")
	if err != nil {
		t.Fatalf("LoadSnapshot(db_a) error = %v, want nil", err)
	}
	if loaded[0].Value != "a" {
		t.Errorf("db_a value = %q, want %q", loaded[0].Value, "a")
	}

	namespaces, err := store.ListNamespaces(ctx)
	if err != nil {
		t.Fatalf("ListNamespaces() error = %v, want nil", err)
	}
	want := []string{"db_a", "db_b"}
	if len(namespaces) != 2 || namespaces[0] != want[0] || namespaces[1] != want[1] {
		t.Errorf("ListNamespaces() = %v, want %v", namespaces, want)
	}
}

func TestTupleStore_RevisionsNewestFirst(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	firstRev, err := store.SaveSnapshot(ctx, "logic_db", []types.Tuple{{Path: "/rules/single/tables", Value: "v1"}})
	if err != nil {
		t.Fatalf("SaveSnapshot(first) error = %v, want nil", err)
	}
	secondRev, err := store.SaveSnapshot(ctx, "logic_db", []types.Tuple{
		{Path: "/rules/single/tables", Value: "v2"},
		{Path: "/rules/single/default_data_source", Value: "ds_0"},
	})
	if err != nil {
		t.Fatalf("SaveSnapshot(second) error = %v, want nil", err)
	}

	revisions, err := store.Revisions(ctx, "logic_db")
	if err != nil {
		t.Fatalf("Revisions() error = %v, want nil", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("len(revisions) = %d, want 2", len(revisions))
	}
	if revisions[0].ID != secondRev || revisions[1].ID != firstRev {
		t.Errorf("revision order = [%s, %s], want newest first", revisions[0].ID, revisions[1].ID)
	}
	if revisions[0].TupleCount != 2 {
		t.Errorf("revisions[0].TupleCount = %d, want 2", revisions[0].TupleCount)
	}
	if _, err := revisions[0].CreatedTime(); err != nil {
		t.Errorf("CreatedTime() error = %v, want parseable RFC3339", err)
	}
}

func TestTupleStore_EmptySnapshotClearsNamespace(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveSnapshot(ctx, "logic_db", []types.Tuple{{Path: "/rules/single/tables", Value: "x"}}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v, want nil", err)
	}
	if _, err := store.SaveSnapshot(ctx, "logic_db", nil); err != nil {
		t.Fatalf("SaveSnapshot(empty) error = %v, want nil", err)
	}

	_, err := store.LoadSnapshot(ctx, "logic_db")
	if !errors.Is(err, types.ErrSnapshotNotFound) {
		t.Errorf("LoadSnapshot() error = %v, want ErrSnapshotNotFound after clearing", err)
	}
}
