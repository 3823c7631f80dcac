package memory

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	"gopkg.in/yaml.v3"
)

var _ portsrepo.CatalogRepositoryFacade = (*CatalogRepository)(nil)

// CatalogRepository keeps catalog items in memory, in insertion order.
type CatalogRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Item
	order []string
	nowFn func() time.Time
}

// NewCatalogRepository returns a catalog pre-populated with items.
func NewCatalogRepository(items ...domain.Item) (*CatalogRepository, error) {
	r := &CatalogRepository{
		items: make(map[string]domain.Item),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	for _, it := range items {
		if err := r.SaveItem(context.Background(), it); err != nil {
			return nil, err
		}
	}
	return r, nil
}

type catalogSeed struct {
	Items []domain.Item `yaml:"items"`
}

// LoadCatalogSeed reads a YAML document of the form
//
//	items:
//	  - id: book-1
//	    title: Dom Casmurro
//	    author: Machado de Assis
func LoadCatalogSeed(path string) ([]domain.Item, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	var seed catalogSeed
	if err := yaml.Unmarshal(buf, &seed); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	return seed.Items, nil
}

func (r *CatalogRepository) ItemExists(_ context.Context, itemID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[itemID]
	return ok, nil
}

func (r *CatalogRepository) FindItemByID(_ context.Context, itemID string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[itemID]
	if !ok {
		return nil, apperrors.ErrItemNotFound
	}
	return &it, nil
}

func (r *CatalogRepository) ListItems(_ context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *CatalogRepository) SaveItem(_ context.Context, item domain.Item) error {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if item.ItemID == "" {
		return fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[item.ItemID]; exists {
		return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, item.ItemID)
	}
	now := r.nowFn()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.LastUpdatedAt = now
	r.items[item.ItemID] = item
	r.order = append(r.order, item.ItemID)
	return nil
}

func (r *CatalogRepository) DeleteItem(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		return apperrors.ErrItemNotFound
	}
	delete(r.items, itemID)
	for i, id := range r.order {
		if id == itemID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
