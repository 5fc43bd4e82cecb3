package persistence

import (
	"github.com/kostman/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and whitelisted ordering from a shared.Filter
// to a query. Used by every repository's list method.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, allowedSortFields, "")
	if field == "" {
		return query.Order(defaultOrder)
	}
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}
