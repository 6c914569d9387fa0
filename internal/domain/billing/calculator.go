package billing

import (
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentTotals holds the document-level amounts derived from line items.
// Total = clamp0(Subtotal + VATAmount - Discount).
type DocumentTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`   // sum of gross line amounts, pre-discount pre-VAT
	VATAmount decimal.Decimal `json:"vat_amount"` // VAT on gross line amounts
	Discount  decimal.Decimal `json:"discount"`   // sum of flat line discounts
	Total     decimal.Decimal `json:"total"`
}

// ZeroTotals returns all-zero document totals
func ZeroTotals() DocumentTotals {
	return DocumentTotals{
		Subtotal:  decimal.Zero,
		VATAmount: decimal.Zero,
		Discount:  decimal.Zero,
		Total:     decimal.Zero,
	}
}

// CalculateTotals computes document totals from an ordered set of line items.
//
// VAT is computed on the gross (pre-discount) line amount. The function is
// pure: the same input always yields the same totals, which is what makes
// edit/recalculate flows safe to re-run. No rounding happens here; callers
// round at the display boundary only.
func CalculateTotals(items []LineItem) (DocumentTotals, error) {
	if len(items) == 0 {
		return DocumentTotals{}, shared.NewDomainError("VALIDATION_ERROR", "Document must have at least one line item")
	}

	totals := ZeroTotals()
	for i := range items {
		item := &items[i]
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return DocumentTotals{}, shared.NewDomainError("VALIDATION_ERROR", "Line quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return DocumentTotals{}, shared.NewDomainError("VALIDATION_ERROR", "Line unit price cannot be negative")
		}
		if item.VATRate.IsNegative() {
			return DocumentTotals{}, shared.NewDomainError("VALIDATION_ERROR", "Line VAT rate cannot be negative")
		}
		if item.Discount.IsNegative() {
			return DocumentTotals{}, shared.NewDomainError("VALIDATION_ERROR", "Line discount cannot be negative")
		}

		totals.Subtotal = totals.Subtotal.Add(item.GrossAmount())
		totals.VATAmount = totals.VATAmount.Add(item.VATAmount())
		totals.Discount = totals.Discount.Add(item.Discount)
	}

	totals.Total = totals.Subtotal.Add(totals.VATAmount).Sub(totals.Discount)
	if totals.Total.IsNegative() {
		totals.Total = decimal.Zero
	}

	return totals, nil
}
