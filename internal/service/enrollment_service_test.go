package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
	"musicmentor/internal/repository"
)

// MockEnrollmentRepository is a mock implementation of EnrollmentRepository.
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) CompleteEnrollment(ctx context.Context, payment *model.Payment) (*repository.EnrollmentResult, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.EnrollmentResult), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func TestEnrollmentService_CompletePayment(t *testing.T) {
	classID := uuid.New()

	tests := []struct {
		name          string
		payment       *model.Payment
		setupMock     func(*MockEnrollmentRepository, *MockPaymentRepository)
		check         func(*testing.T, *repository.EnrollmentResult)
		expectedError error
	}{
		{
			name: "successful completion reports the composite outcome",
			payment: &model.Payment{
				TransactionID: "tx-1",
				Email:         "sam@example.com",
				ClassItemID:   classID,
				Amount:        decimal.NewFromInt(20),
			},
			setupMock: func(mEnroll *MockEnrollmentRepository, mPay *MockPaymentRepository) {
				mEnroll.On("CompleteEnrollment", mock.Anything, mock.AnythingOfType("*model.Payment")).
					Return(&repository.EnrollmentResult{
						Payment:           &model.Payment{TransactionID: "tx-1", Email: "sam@example.com"},
						DeletedSelections: 1,
					}, nil)
			},
			check: func(t *testing.T, result *repository.EnrollmentResult) {
				assert.Equal(t, int64(1), result.DeletedSelections)
				assert.False(t, result.AlreadyProcessed)
			},
		},
		{
			name: "missing selection still completes",
			payment: &model.Payment{
				TransactionID: "tx-2",
				Email:         "sam@example.com",
				ClassItemID:   classID,
				Amount:        decimal.NewFromInt(20),
			},
			setupMock: func(mEnroll *MockEnrollmentRepository, mPay *MockPaymentRepository) {
				mEnroll.On("CompleteEnrollment", mock.Anything, mock.AnythingOfType("*model.Payment")).
					Return(&repository.EnrollmentResult{
						Payment:           &model.Payment{TransactionID: "tx-2"},
						DeletedSelections: 0,
					}, nil)
			},
			check: func(t *testing.T, result *repository.EnrollmentResult) {
				assert.Equal(t, int64(0), result.DeletedSelections)
				assert.NotNil(t, result.Payment)
			},
		},
		{
			name: "replayed transaction answers with the original payment",
			payment: &model.Payment{
				TransactionID: "tx-1",
				Email:         "sam@example.com",
				ClassItemID:   classID,
				Amount:        decimal.NewFromInt(20),
			},
			setupMock: func(mEnroll *MockEnrollmentRepository, mPay *MockPaymentRepository) {
				mEnroll.On("CompleteEnrollment", mock.Anything, mock.AnythingOfType("*model.Payment")).
					Return(nil, apperrors.ErrDuplicatePayment)
				mPay.On("FindByTransactionID", mock.Anything, "tx-1").
					Return(&model.Payment{TransactionID: "tx-1", Email: "sam@example.com"}, nil)
			},
			check: func(t *testing.T, result *repository.EnrollmentResult) {
				assert.True(t, result.AlreadyProcessed)
				assert.Equal(t, "tx-1", result.Payment.TransactionID)
			},
		},
		{
			name: "full class surfaces no-seats error",
			payment: &model.Payment{
				TransactionID: "tx-3",
				Email:         "sam@example.com",
				ClassItemID:   classID,
				Amount:        decimal.NewFromInt(20),
			},
			setupMock: func(mEnroll *MockEnrollmentRepository, mPay *MockPaymentRepository) {
				mEnroll.On("CompleteEnrollment", mock.Anything, mock.AnythingOfType("*model.Payment")).
					Return(nil, apperrors.ErrNoSeatsAvailable)
			},
			expectedError: apperrors.ErrNoSeatsAvailable,
		},
		{
			name: "non-positive amount rejected before any store call",
			payment: &model.Payment{
				TransactionID: "tx-4",
				Email:         "sam@example.com",
				ClassItemID:   classID,
				Amount:        decimal.Zero,
			},
			setupMock:     func(mEnroll *MockEnrollmentRepository, mPay *MockPaymentRepository) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEnroll := new(MockEnrollmentRepository)
			mockPay := new(MockPaymentRepository)
			tt.setupMock(mockEnroll, mockPay)

			svc := NewEnrollmentService(mockEnroll, mockPay, NewLocalIntentProvider())
			result, err := svc.CompletePayment(context.Background(), tt.payment)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				tt.check(t, result)
			}

			mockEnroll.AssertExpectations(t)
			mockPay.AssertExpectations(t)
		})
	}
}

func TestEnrollmentService_CompletePayment_DefaultsTransactionID(t *testing.T) {
	mockEnroll := new(MockEnrollmentRepository)
	mockPay := new(MockPaymentRepository)
	mockEnroll.On("CompleteEnrollment", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
		return p.TransactionID != ""
	})).Return(&repository.EnrollmentResult{Payment: &model.Payment{}}, nil)

	svc := NewEnrollmentService(mockEnroll, mockPay, NewLocalIntentProvider())
	_, err := svc.CompletePayment(context.Background(), &model.Payment{
		Email:       "sam@example.com",
		ClassItemID: uuid.New(),
		Amount:      decimal.NewFromInt(20),
	})

	assert.NoError(t, err)
	mockEnroll.AssertExpectations(t)
}

func TestEnrollmentService_CreatePaymentIntent(t *testing.T) {
	svc := NewEnrollmentService(new(MockEnrollmentRepository), new(MockPaymentRepository), NewLocalIntentProvider())

	secret, err := svc.CreatePaymentIntent(context.Background(), decimal.NewFromInt(45))
	assert.NoError(t, err)
	assert.Contains(t, secret, "_secret_")

	other, err := svc.CreatePaymentIntent(context.Background(), decimal.NewFromInt(45))
	assert.NoError(t, err)
	assert.NotEqual(t, secret, other)

	_, err = svc.CreatePaymentIntent(context.Background(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestEnrollmentService_ListPayments(t *testing.T) {
	mockPay := new(MockPaymentRepository)
	mockPay.On("ListByEmail", mock.Anything, "sam@example.com").Return([]model.Payment{
		{TransactionID: "tx-newest"},
		{TransactionID: "tx-older"},
	}, nil)

	svc := NewEnrollmentService(new(MockEnrollmentRepository), mockPay, NewLocalIntentProvider())
	payments, err := svc.ListPayments(context.Background(), "sam@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "tx-newest", payments[0].TransactionID)
	mockPay.AssertExpectations(t)
}
