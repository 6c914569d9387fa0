package persistence

import (
	"github.com/fatoora/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies search, ordering and pagination to a query. The order
// column is validated against the entity's whitelist before it reaches SQL.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool, searchColumns ...string) *gorm.DB {
	query = applySearch(query, filter, searchColumns...)
	query = applyOrdering(query, filter, allowedSortFields)
	return applyPagination(query, filter)
}

// applySearch applies a case-insensitive search across the given columns
func applySearch(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search == "" || len(searchColumns) == 0 {
		return query
	}
	pattern := "%" + filter.Search + "%"
	condition := ""
	args := make([]interface{}, 0, len(searchColumns))
	for i, column := range searchColumns {
		if i > 0 {
			condition += " OR "
		}
		condition += column + " ILIKE ?"
		args = append(args, pattern)
	}
	return query.Where(condition, args...)
}

// applyOrdering applies a validated ORDER BY clause
func applyOrdering(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPagination applies LIMIT and OFFSET from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
