package services

import (
	"context"

	"github.com/SscSPs/library_circulation/internal/core/domain"
)

// CatalogSvcFacade is the slim catalog surface the circulation backend needs.
type CatalogSvcFacade interface {
	ItemExistenceChecker

	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	AddItem(ctx context.Context, item domain.Item) (*domain.Item, error)

	// DeleteItem removes an item unless it is currently on loan.
	DeleteItem(ctx context.Context, itemID string) error
}
