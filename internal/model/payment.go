package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is an append-only ledger entry for a completed class payment.
// TransactionID is the provider-side reference and the idempotency key:
// the unique index makes a replayed completion a detectable duplicate
// instead of a second ledger row.
type Payment struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	// Seq is assigned by the database in insertion order. Listings sort on it
	// because created_at has second precision and ties between payments in the
	// same second would otherwise fall back to random UUID order.
	Seq           uint64          `json:"-" gorm:"autoIncrement;uniqueIndex"`
	TransactionID string          `json:"transaction_id" gorm:"size:255;not null;uniqueIndex"`
	Email         string          `json:"email" gorm:"size:255;not null;index"`
	ClassItemID   uuid.UUID       `json:"class_item_id" gorm:"type:char(36);not null;index"`
	ClassName     string          `json:"class_name" gorm:"size:255"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
