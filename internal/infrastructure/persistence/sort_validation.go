package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"client_name": true,
	"date":        true,
	"due_date":    true,
	"status":      true,
	"total":       true,
	"paid_amount": true,
}

// QuoteSortFields contains allowed sort fields for quotes
var QuoteSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"client_name": true,
	"date":        true,
	"expiry_date": true,
	"status":      true,
	"total":       true,
}

// ProformaSortFields contains allowed sort fields for proforma invoices
var ProformaSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"client_name": true,
	"date":        true,
	"expiry_date": true,
	"status":      true,
	"total":       true,
}

// CreditNoteSortFields contains allowed sort fields for credit notes
var CreditNoteSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"number":           true,
	"client_name":      true,
	"date":             true,
	"status":           true,
	"total":            true,
	"applied_amount":   true,
	"remaining_amount": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"category_id":   true,
	"unit":          true,
	"price":         true,
	"vat_rate":      true,
	"current_stock": true,
	"min_stock":     true,
	"status":        true,
}

// CategorySortFields contains allowed sort fields for product categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"city":       true,
	"ice":        true,
	"active":     true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"product_id":   true,
	"product_code": true,
	"type":         true,
	"quantity":     true,
	"new_stock":    true,
}

// StockCountSortFields contains allowed sort fields for stock count sessions
var StockCountSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"number":       true,
	"status":       true,
	"started_at":   true,
	"completed_at": true,
}

// TaxSortFields contains allowed sort fields for taxes
var TaxSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"rate":       true,
	"type":       true,
	"is_default": true,
	"active":     true,
}

// TaxRuleSortFields contains allowed sort fields for tax rules
var TaxRuleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"priority":   true,
	"active":     true,
}
