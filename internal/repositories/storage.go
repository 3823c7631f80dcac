// Package repositories wires the configured storage driver into a RepositoryProvider.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation/internal/platform/config"
	"github.com/SscSPs/library_circulation/internal/repositories/database/pgsql"
	"github.com/SscSPs/library_circulation/internal/repositories/memory"
	"github.com/SscSPs/library_circulation/internal/repositories/sqlite"
	"github.com/SscSPs/library_circulation/internal/utils/idgen"
	"github.com/SscSPs/library_circulation/pkg/database"
)

// Open builds the repositories for cfg.StorageDriver. The returned cleanup func
// releases database handles and is never nil.
func Open(ctx context.Context, cfg *config.Config, now func() time.Time, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	noop := func() {}

	ids, err := idgen.New(idgen.Format(cfg.LoanIDFormat))
	if err != nil {
		return portsrepo.RepositoryProvider{}, noop, err
	}

	var seed []domain.Item
	if cfg.CatalogSeedFile != "" {
		if seed, err = memory.LoadCatalogSeed(cfg.CatalogSeedFile); err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		logger.Info("Loaded catalog seed", slog.String("file", cfg.CatalogSeedFile), slog.Int("items", len(seed)))
	}

	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		catalog, err := memory.NewCatalogRepository(seed...)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		return portsrepo.RepositoryProvider{
			LoanRepo:    memory.NewLoanRepository(memory.WithClock(now), memory.WithIDGenerator(ids)),
			CatalogRepo: catalog,
		}, noop, nil

	case config.StorageSQLite:
		catalog, err := memory.NewCatalogRepository(seed...)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		loans, err := sqlite.NewLoanRepository(ctx, cfg.SQLitePath, memory.WithClock(now), memory.WithIDGenerator(ids))
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		logger.Info("SQLite loan store opened", slog.String("path", loans.Path()))
		closeFn := func() {
			if err := loans.Close(); err != nil {
				logger.Error("Error closing sqlite store", slog.String("error", err.Error()))
			}
		}
		return portsrepo.RepositoryProvider{LoanRepo: loans, CatalogRepo: catalog}, closeFn, nil

	case config.StoragePostgres:
		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}

		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		provider := pgsql.NewRepositoryProvider(dbPool, pgsql.WithClock(now), pgsql.WithIDGenerator(ids))
		for _, item := range seed {
			if err := provider.CatalogRepo.SaveItem(ctx, item); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
				database.ClosePgxPool(dbPool)
				return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("seed item %s: %w", item.ItemID, err)
			}
		}
		return provider, func() { database.ClosePgxPool(dbPool) }, nil
	}

	return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
