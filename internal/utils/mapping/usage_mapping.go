package mapping

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/models"
)

// ToDomainUsage converts a models.Usage to a domain.Usage.
func ToDomainUsage(m models.Usage) domain.Usage {
	return domain.Usage{
		UserID: m.UserID,
		Month:  m.Month,
		Count:  m.Count,
	}
}
