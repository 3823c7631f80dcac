package mapping

import (
	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/SscSPs/library_circulation/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:      d.ItemID,
		Title:       d.Title,
		Author:      d.Author,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:      m.ItemID,
		Title:       m.Title,
		Author:      m.Author,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of model Items to a slice of domain Items
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	ds := make([]domain.Item, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}
