package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation/internal/models"
	"github.com/SscSPs/library_circulation/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) *PgxCatalogRepository {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func (r *PgxCatalogRepository) ItemExists(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1);`, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check item %s: %w", itemID, err)
	}
	return exists, nil
}

func (r *PgxCatalogRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT item_id, title, author, created_at, last_updated_at FROM items WHERE item_id = $1;`
	var m models.Item
	err := r.Pool.QueryRow(ctx, query, itemID).Scan(&m.ItemID, &m.Title, &m.Author, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	d := mapping.ToDomainItem(m)
	return &d, nil
}

func (r *PgxCatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.Pool.Query(ctx, `SELECT item_id, title, author, created_at, last_updated_at FROM items ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Item, error) {
		var m models.Item
		err := row.Scan(&m.ItemID, &m.Title, &m.Author, &m.CreatedAt, &m.LastUpdatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}
	return mapping.ToDomainItemSlice(items), nil
}

func (r *PgxCatalogRepository) SaveItem(ctx context.Context, item domain.Item) error {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if item.ItemID == "" {
		return fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.LastUpdatedAt = now
	m := mapping.ToModelItem(item)

	query := `
		INSERT INTO items (item_id, title, author, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, m.ItemID, m.Title, m.Author, m.CreatedAt, m.LastUpdatedAt); err != nil {
		if _, dup := uniqueViolationOn(err); dup {
			return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, m.ItemID)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}
