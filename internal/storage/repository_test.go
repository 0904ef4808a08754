package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"opsboard/internal/core"
	"opsboard/internal/dataset/memory"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "opsboard.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSeedAndReadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	want := memory.Sample()

	if err := repo.Seed(ctx, want); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	got, err := repo.ReadSnapshot(ctx)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}

	if !reflect.DeepEqual(got.Deals, want.Deals) {
		t.Errorf("deals changed across round trip:\n got %+v\nwant %+v", got.Deals, want.Deals)
	}
	if !reflect.DeepEqual(got.Activities, want.Activities) {
		t.Errorf("activities changed across round trip:\n got %+v\nwant %+v", got.Activities, want.Activities)
	}
	if got.Finance != want.Finance {
		t.Errorf("finance = %+v, want %+v", got.Finance, want.Finance)
	}
	if len(got.Wins) != len(want.Wins) || !reflect.DeepEqual(got.Wins[0].ClapperIDs, want.Wins[0].ClapperIDs) {
		t.Errorf("wins = %+v, want %+v", got.Wins, want.Wins)
	}
}

func TestSeedReplacesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Seed(ctx, memory.Sample()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	smaller := memory.Sample()
	smaller.Deals = smaller.Deals[:2]
	if err := repo.Seed(ctx, smaller); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	got, err := repo.ReadSnapshot(ctx)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got.Deals) != 2 {
		t.Fatalf("deals = %d, want 2 after reseed", len(got.Deals))
	}
}

func TestSeedRejectsInvalidSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	bad := memory.Sample()
	bad.Compliance[0].Category = "AUDITS"
	if err := repo.Seed(context.Background(), bad); err == nil {
		t.Fatal("Seed accepted an invalid snapshot")
	}
}

func TestReadSnapshotEmptyDatabase(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.ReadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got.Deals) != 0 || len(got.Clients) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
	if got.Finance != (core.FinanceSnapshot{}) {
		t.Fatalf("finance = %+v, want zero", got.Finance)
	}
}
