package memory

import (
	"context"
	"errors"
	"testing"

	"opsboard/internal/core"
)

func TestSampleValidates(t *testing.T) {
	if err := Sample().Validate(); err != nil {
		t.Fatalf("sample snapshot invalid: %v", err)
	}
}

func TestNewRejectsInvalidSnapshot(t *testing.T) {
	snap := Sample()
	snap.Deals[0].Stage = "QUALIFIED"
	if _, err := New(snap); !errors.Is(err, core.ErrInvalidStage) {
		t.Fatalf("New() error = %v, want ErrInvalidStage", err)
	}
}

func TestReadSnapshotIsolation(t *testing.T) {
	store := NewSample()
	first, err := store.ReadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	next := Sample()
	next.Deals = next.Deals[:1]
	if err := store.Replace(next); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got, want := len(first.Deals), len(Sample().Deals); got != want {
		t.Fatalf("earlier snapshot mutated: %d deals, want %d", got, want)
	}
	second, err := store.ReadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(second.Deals) != 1 {
		t.Fatalf("replaced snapshot has %d deals, want 1", len(second.Deals))
	}
}

func TestReplaceRejectsInvalid(t *testing.T) {
	store := NewSample()
	bad := Sample()
	bad.Clients[0].Name = "   "
	if err := store.Replace(bad); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("Replace error = %v, want ErrEmptyName", err)
	}
}
