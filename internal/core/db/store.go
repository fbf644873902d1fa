package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/keelworks/treeline/internal/types"
)

/*
 * Tuple snapshot store.
 *
 * Persists the coordination tree's tuple state locally, one snapshot per
 * namespace (a proxy database, or "global" for cluster-wide nodes).
 * SaveSnapshot is transactional: the namespace's previous tuple set is
 * replaced wholesale and a UUIDv7 revision row is recorded, so readers see
 * either the old snapshot or the new one, never a mix. This is where batch
 * atomicity lives; the tuple engine itself never touches storage.
 */

// Revision records one saved snapshot of a namespace.
type Revision struct {
	ID         types.RevisionID `db:"revision_id"`
	Namespace  string           `db:"namespace"`
	TupleCount int              `db:"tuple_count"`
	CreatedAt  string           `db:"created_at"`
}

// CreatedTime parses the revision's RFC3339 creation timestamp.
func (r Revision) CreatedTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.CreatedAt)
}

// TupleStore persists tuple snapshots per namespace.
type TupleStore struct {
	db      *sqlx.DB
	queries *Queries
}

// NewTupleStore creates a store over an open connection.
func NewTupleStore(conn *sqlx.DB) (*TupleStore, error) {
	queries, err := LoadQueries(conn)
	if err != nil {
		return nil, err
	}
	return &TupleStore{db: conn, queries: queries}, nil
}

// SaveSnapshot replaces namespace's tuple set with the given tuples and
// records a new revision. Returns the revision ID.
func (s *TupleStore) SaveSnapshot(ctx context.Context, namespace string, tuples []types.Tuple) (types.RevisionID, error) {
	deleteStmt, err := s.queries.Raw("delete-namespace-tuples")
	if err != nil {
		return "", err
	}
	insertStmt, err := s.queries.Raw("insert-tuple")
	if err != nil {
		return "", err
	}
	revisionStmt, err := s.queries.Raw("insert-revision")
	if err != nil {
		return "", err
	}

	revision := types.NewRevisionID()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deleteStmt, namespace); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to clear namespace %q: %w", namespace, err)
	}
	for _, t := range tuples {
		if _, err := tx.ExecContext(ctx, insertStmt, namespace, t.Path, t.Value); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert tuple %s: %w", t.Path, err)
		}
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, revisionStmt, string(revision), namespace, len(tuples), createdAt); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to record revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return revision, nil
}

// LoadSnapshot returns namespace's current tuple set ordered by path.
// Reports ErrSnapshotNotFound when the namespace holds no tuples.
func (s *TupleStore) LoadSnapshot(ctx context.Context, namespace string) ([]types.Tuple, error) {
	stmt, err := s.queries.Raw("select-namespace-tuples")
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Path  string `db:"path"`
		Value string `db:"value"`
	}
	if err := s.db.SelectContext(ctx, &rows, stmt, namespace); err != nil {
		return nil, fmt.Errorf("failed to query tuples for %q: %w", namespace, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: namespace %q", types.ErrSnapshotNotFound, namespace)
	}

	tuples := make([]types.Tuple, 0, len(rows))
	for _, row := range rows {
		tuples = append(tuples, types.Tuple{Path: row.Path, Value: row.Value})
	}
	return tuples, nil
}

// ListNamespaces returns every namespace holding at least one tuple.
func (s *TupleStore) ListNamespaces(ctx context.Context) ([]string, error) {
	stmt, err := s.queries.Raw("list-namespaces")
	if err != nil {
		return nil, err
	}
	var namespaces []string
	if err := s.db.SelectContext(ctx, &namespaces, stmt); err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	return namespaces, nil
}

// Revisions returns namespace's revision history, newest first.
// UUIDv7 revision IDs sort by creation time, so ordering by ID is ordering
// by time.
func (s *TupleStore) Revisions(ctx context.Context, namespace string) ([]Revision, error) {
	stmt, err := s.queries.Raw("select-revisions")
	if err != nil {
		return nil, err
	}
	var revisions []Revision
	if err := s.db.SelectContext(ctx, &revisions, stmt, namespace); err != nil {
		return nil, fmt.Errorf("failed to query revisions for %q: %w", namespace, err)
	}
	return revisions, nil
}
