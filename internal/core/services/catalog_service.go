package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
)

type catalogService struct {
	BaseService
	repo  portsrepo.CatalogRepositoryFacade
	guard portssvc.LoanGuard
}

// NewCatalogService creates the catalog service. guard vetoes deletion of lent items;
// a nil guard allows every deletion.
func NewCatalogService(repo portsrepo.CatalogRepositoryFacade, guard portssvc.LoanGuard) portssvc.CatalogSvcFacade {
	return &catalogService{repo: repo, guard: guard}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) ItemExists(ctx context.Context, itemID string) (bool, error) {
	return s.repo.ItemExists(ctx, itemID)
}

func (s *catalogService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.repo.FindItemByID(ctx, itemID)
}

func (s *catalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list catalog items")
		return nil, err
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

func (s *catalogService) AddItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if item.ItemID == "" {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		s.LogWarn(ctx, err, "Failed to add catalog item", slog.String("item_id", item.ItemID))
		return nil, err
	}
	return s.repo.FindItemByID(ctx, item.ItemID)
}

func (s *catalogService) DeleteItem(ctx context.Context, itemID string) error {
	if s.guard != nil {
		onLoan, err := s.guard.IsItemOnLoan(ctx, itemID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check loans before delete", slog.String("item_id", itemID))
			return err
		}
		if onLoan {
			return fmt.Errorf("%w: %s", apperrors.ErrItemOnLoan, itemID)
		}
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Catalog item deleted", slog.String("item_id", itemID))
	return nil
}
