package backend

import (
	"context"
	"fmt"
	"log/slog"

	gsheet "opsboard/internal/dataset/google"
	"opsboard/internal/dataset/memory"
	"opsboard/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// A fresh database gets the sample dataset so the board is not blank
	// on first run.
	snap, err := repo.ReadSnapshot(ctx)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("read initial snapshot: %w", err)
	}
	if len(snap.Team) == 0 {
		if err := repo.Seed(ctx, memory.Sample()); err != nil {
			repo.Close()
			return nil, fmt.Errorf("seed sample dataset: %w", err)
		}
		f.logger.Info("Seeded empty database with sample dataset", "db_path", config.SQLiteDBPath)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Reader:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context) (*BackendResult, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend")

	return &BackendResult{Reader: cli}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	store := memory.NewSample()

	f.logger.Info("Initialized memory backend with sample dataset")

	return &BackendResult{Reader: store}, nil
}
