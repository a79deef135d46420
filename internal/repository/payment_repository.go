package repository

import (
	"context"

	"gorm.io/gorm"

	"musicmentor/internal/model"
)

// PaymentRepository defines ledger persistence operations. The ledger is
// append-only; there are no update or delete methods.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByEmail returns a student's payments, newest first. Ordering uses the
// auto-incremented seq column, which is strictly monotonic in insertion order
// even when two payments land in the same created_at second.
func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("seq DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
