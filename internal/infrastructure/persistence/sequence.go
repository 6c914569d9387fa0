package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document number prefixes. Numbers reset every calendar year, e.g.
// INV-2026-0001.
const (
	docTypeInvoice    = "invoice"
	docTypeQuote      = "quote"
	docTypeProforma   = "proforma"
	docTypeCreditNote = "credit_note"
	docTypeStockCount = "stock_count"

	prefixInvoice    = "INV"
	prefixQuote      = "QT"
	prefixProforma   = "PRO"
	prefixCreditNote = "CN"
	prefixStockCount = "CNT"
)

// documentSequence tracks the last allocated number per company, document
// type and year.
type documentSequence struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocType   string    `gorm:"type:varchar(20);primaryKey"`
	Year      int       `gorm:"primaryKey"`
	LastValue int64     `gorm:"not null"`
}

// TableName returns the table name for document sequences
func (documentSequence) TableName() string {
	return "document_sequences"
}

// nextDocumentNumber allocates the next sequential number for a document
// type. The increment runs inside a transaction so the UPDATE row lock
// serializes concurrent allocations. The very first allocation of a new
// year can conflict on the primary key under concurrency; the insert error
// surfaces to the caller, who retries the operation.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, companyID uuid.UUID, docType, prefix string) (string, error) {
	year := time.Now().Year()

	var value int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&documentSequence{}).
			Where("company_id = ? AND doc_type = ? AND year = ?", companyID, docType, year).
			UpdateColumn("last_value", gorm.Expr("last_value + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			seq := documentSequence{CompanyID: companyID, DocType: docType, Year: year, LastValue: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		var seq documentSequence
		if err := tx.
			Where("company_id = ? AND doc_type = ? AND year = ?", companyID, docType, year).
			First(&seq).Error; err != nil {
			return err
		}
		value = seq.LastValue
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", docType, err)
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, year, value), nil
}
