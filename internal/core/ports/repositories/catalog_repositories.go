package repositories

import (
	"context"

	"github.com/SscSPs/library_circulation/internal/core/domain"
)

// CatalogReader defines read operations for catalog items.
type CatalogReader interface {
	ItemExists(ctx context.Context, itemID string) (bool, error)
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// CatalogWriter defines write operations for catalog items.
type CatalogWriter interface {
	SaveItem(ctx context.Context, item domain.Item) error
	DeleteItem(ctx context.Context, itemID string) error
}

// CatalogRepositoryFacade combines all catalog repository interfaces.
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
