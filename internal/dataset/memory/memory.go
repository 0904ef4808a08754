// Package memory is the default dataset backend: a validated in-memory
// snapshot, seeded with the sample book unless the caller provides one.
package memory

import (
	"context"
	"fmt"
	"sync"

	"opsboard/internal/core"
)

type Store struct {
	mu   sync.RWMutex
	snap core.Snapshot
}

// New builds a store around the given snapshot, failing fast on any
// record with an unenumerated stage or status.
func New(snap core.Snapshot) (*Store, error) {
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("validate snapshot: %w", err)
	}
	return &Store{snap: snap}, nil
}

// NewSample builds a store seeded with the bundled sample dataset.
func NewSample() *Store {
	s, err := New(Sample())
	if err != nil {
		// The bundled fixture is covered by tests; a validation failure
		// here is a programming error.
		panic(err)
	}
	return s
}

// ReadSnapshot implements dataset.SnapshotReader. Slices are copied at
// the top level so callers never observe later replacements.
func (s *Store) ReadSnapshot(_ context.Context) (core.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap), nil
}

// Replace swaps in a new snapshot after validating it.
func (s *Store) Replace(snap core.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

func copySnapshot(in core.Snapshot) core.Snapshot {
	out := in
	out.Team = append([]core.TeamMember(nil), in.Team...)
	out.Goals = append([]core.AnnualGoal(nil), in.Goals...)
	out.Deals = append([]core.Deal(nil), in.Deals...)
	out.Ventures = append([]core.Venture(nil), in.Ventures...)
	out.Projects = append([]core.StudioProject(nil), in.Projects...)
	out.Clients = append([]core.Client(nil), in.Clients...)
	out.Compliance = append([]core.ComplianceItem(nil), in.Compliance...)
	out.Activities = append([]core.WeeklyActivity(nil), in.Activities...)
	out.MustConquer = append([]core.MustConquer(nil), in.MustConquer...)
	out.Wins = append([]core.Win(nil), in.Wins...)
	out.TopOfMind = append([]core.TopOfMind(nil), in.TopOfMind...)
	return out
}
