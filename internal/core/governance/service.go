// Package governance is the configuration-persistence layer above the tuple
// engine: it encodes rule configurations into snapshots and reconstructs
// them on load.
package governance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keelworks/treeline/internal/core/db"
	"github.com/keelworks/treeline/internal/tuple"
	"github.com/keelworks/treeline/internal/types"
)

/*
 * Snapshot orchestration.
 *
 * Persist and Load are the two operations cluster-sync logic calls: Persist
 * on configuration change, Load on node start or observed change. Absence of
 * a rule type in a snapshot is normal and skipped quietly; a format or
 * schema error is fatal to that load and propagates, leaving the caller's
 * startup/reload logic to decide whether to abort or fall back.
 */

// Service couples the tuple engine with the snapshot store.
type Service struct {
	engine     *tuple.Engine
	store      *db.TupleStore
	prototypes []any
	logger     *zap.Logger
}

// NewService creates the governance service.
// prototypes lists the configuration types Load reconstructs, in order.
func NewService(engine *tuple.Engine, store *db.TupleStore, prototypes []any, logger *zap.Logger) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, store: store, prototypes: prototypes, logger: logger}, nil
}

// Store exposes the underlying snapshot store for callers that need raw
// tuple access, such as diagnostic tooling.
func (s *Service) Store() *db.TupleStore {
	return s.store
}

// Persist encodes configs and saves them as namespace's new snapshot.
// Every config must be registered for tuple conversion; an unregistered
// type is a wiring defect, not a skippable condition.
func (s *Service) Persist(ctx context.Context, namespace string, configs ...any) (types.RevisionID, error) {
	var tuples []types.Tuple
	for _, cfg := range configs {
		if !s.engine.Registered(cfg) {
			return "", fmt.Errorf("%T is not registered for tuple conversion", cfg)
		}
		encoded, err := s.engine.Encode(cfg)
		if err != nil {
			return "", fmt.Errorf("encode %T: %w", cfg, err)
		}
		tuples = append(tuples, encoded...)
	}

	revision, err := s.store.SaveSnapshot(ctx, namespace, tuples)
	if err != nil {
		return "", err
	}
	s.logger.Info("snapshot persisted",
		zap.String("namespace", namespace),
		zap.Int("configs", len(configs)),
		zap.Int("tuples", len(tuples)),
		zap.String("revision", string(revision)))
	return revision, nil
}

// Load reads namespace's snapshot and decodes every registered rule type
// found in it. Rule types absent from the snapshot are omitted from the
// result; they are "not configured", not an error.
func (s *Service) Load(ctx context.Context, namespace string) ([]any, error) {
	tuples, err := s.store.LoadSnapshot(ctx, namespace)
	if err != nil {
		return nil, err
	}

	var configs []any
	for _, prototype := range s.prototypes {
		cfg, ok, err := s.engine.Decode(tuples, prototype)
		if err != nil {
			return nil, fmt.Errorf("decode %T: %w", prototype, err)
		}
		if ok {
			configs = append(configs, cfg)
		}
	}
	s.logger.Info("snapshot loaded",
		zap.String("namespace", namespace),
		zap.Int("tuples", len(tuples)),
		zap.Int("configs", len(configs)))
	return configs, nil
}
