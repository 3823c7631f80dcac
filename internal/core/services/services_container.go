package services

import (
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/platform/config"
	"github.com/SscSPs/library_circulation/internal/platform/metrics"
	"github.com/SscSPs/library_circulation/internal/utils/accounting"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.LendingMetrics) (*portssvc.ServiceContainer, error) {
	schedule := accounting.FineSchedule{BaseFee: cfg.FineBaseFee, PerDayFee: cfg.FinePerDayFee}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}

	// Lending only needs item existence, which the catalog repository answers directly;
	// the catalog service in turn consults lending before deleting an item.
	container.Lending = NewLendingService(
		repos.LoanRepo,
		repos.CatalogRepo,
		WithFineSchedule(schedule),
		WithFineGating(cfg.FineGatedReturns),
		WithMaxTermDays(cfg.LoanMaxTermDays),
		WithMetrics(m),
	)
	container.Catalog = NewCatalogService(repos.CatalogRepo, container.Lending)

	return container, nil
}
