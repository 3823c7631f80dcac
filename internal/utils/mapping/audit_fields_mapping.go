package mapping

import (
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/SscSPs/library_circulation/internal/models"
)

// storedTime is how audit timestamps are persisted: UTC, microsecond precision.
func storedTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Microsecond)
}

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     storedTime(d.CreatedAt),
		LastUpdatedAt: storedTime(d.LastUpdatedAt),
	}
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     storedTime(m.CreatedAt),
		LastUpdatedAt: storedTime(m.LastUpdatedAt),
	}
}
