package entity

import (
	"context"
	"time"

	"salemargin/internal/core/apperror"
)

// Document is the base type for business transactions: sale orders, landed
// cost records.
type Document struct {
	BaseDocument

	// Number is the document number (unique within type)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(number string) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Number:       number,
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
