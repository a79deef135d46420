package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
	"musicmentor/internal/repository"
)

// EnrollmentService drives the payment-completion workflow: ledger append,
// basket removal, and seat adjustment as one unit.
type EnrollmentService interface {
	CompletePayment(ctx context.Context, payment *model.Payment) (*repository.EnrollmentResult, error)
	ListPayments(ctx context.Context, email string) ([]model.Payment, error)
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	paymentRepo    repository.PaymentRepository
	intents        IntentProvider
}

// NewEnrollmentService builds an EnrollmentService.
func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	paymentRepo repository.PaymentRepository,
	intents IntentProvider,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		paymentRepo:    paymentRepo,
		intents:        intents,
	}
}

// CompletePayment finalizes a provider-authorized payment. The transaction ID
// keys the whole sequence: replaying a completion with the same ID returns
// the original outcome instead of touching the ledger or the seat counters a
// second time.
func (s *enrollmentService) CompletePayment(ctx context.Context, payment *model.Payment) (*repository.EnrollmentResult, error) {
	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}
	if payment.TransactionID == "" {
		payment.TransactionID = newTransactionID()
	}

	result, err := s.enrollmentRepo.CompleteEnrollment(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicatePayment) {
			existing, findErr := s.paymentRepo.FindByTransactionID(ctx, payment.TransactionID)
			if findErr != nil {
				return nil, fmt.Errorf("load recorded payment: %w", findErr)
			}
			return &repository.EnrollmentResult{
				Payment:          existing,
				AlreadyProcessed: true,
			}, nil
		}
		return nil, err
	}
	return result, nil
}

// newTransactionID covers clients that complete a payment without a
// provider-side reference.
func newTransactionID() string {
	return uuid.New().String()
}

// ListPayments returns a student's ledger entries, newest first.
func (s *enrollmentService) ListPayments(ctx context.Context, email string) ([]model.Payment, error) {
	return s.paymentRepo.ListByEmail(ctx, email)
}

// CreatePaymentIntent asks the provider to authorize an amount and returns
// the client secret for the frontend.
func (s *enrollmentService) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", apperrors.ErrInvalidAmount
	}
	return s.intents.CreateIntent(ctx, amount)
}
