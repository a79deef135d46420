package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
)

// EnrollmentResult describes the outcome of a completed payment: the ledger
// row written, how many basket entries were cleared, and whether the call was
// a replay of an already-recorded transaction.
type EnrollmentResult struct {
	Payment           *model.Payment `json:"payment"`
	DeletedSelections int64          `json:"deleted_selections"`
	AlreadyProcessed  bool           `json:"already_processed"`
}

// EnrollmentRepository runs the payment-completion sequence against the store.
type EnrollmentRepository interface {
	CompleteEnrollment(ctx context.Context, payment *model.Payment) (*EnrollmentResult, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// CompleteEnrollment records the payment, clears the matching basket entries,
// and takes one seat on the class, all inside a single transaction. Any step
// failing rolls the whole sequence back, so the ledger, basket, and catalog
// never disagree. The seat decrement is conditional on available_seats > 0,
// which keeps two concurrent payments for the last seat from both committing.
func (r *enrollmentRepository) CompleteEnrollment(ctx context.Context, payment *model.Payment) (*EnrollmentResult, error) {
	result := &EnrollmentResult{Payment: payment}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicatePayment
			}
			return err
		}

		deleted, err := (&selectionRepository{db: tx}).DeleteByClassAndEmail(ctx, payment.ClassItemID, payment.Email)
		if err != nil {
			return err
		}
		// A missing selection is fine; the payment still completes.
		result.DeletedSelections = deleted

		res := tx.Model(&model.Class{}).
			Where("id = ? AND available_seats > 0", payment.ClassItemID).
			Updates(map[string]interface{}{
				"available_seats":  gorm.Expr("available_seats - 1"),
				"enrolled_student": gorm.Expr("enrolled_student + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var class model.Class
			if err := tx.Select("id").Where("id = ?", payment.ClassItemID).First(&class).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrClassNotFound
				}
				return err
			}
			return apperrors.ErrNoSeatsAvailable
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
