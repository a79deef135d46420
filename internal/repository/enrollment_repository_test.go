package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
)

// newMockDB opens a gorm session over a sqlmock connection so repository
// tests can assert the exact SQL sent to MySQL.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, mock
}

func testPayment(classID uuid.UUID) *model.Payment {
	return &model.Payment{
		TransactionID: "tx-100",
		Email:         "sam@example.com",
		ClassItemID:   classID,
		ClassName:     "Jazz Piano",
		Amount:        decimal.NewFromInt(50),
	}
}

func TestEnrollmentRepository_CompleteEnrollment_TakesSeatAndClearsBasket(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)
	classID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM `selections` WHERE class_item_id = \\? AND email = \\?").
		WithArgs(classID.String(), "sam@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `classes` SET .*available_seats - 1.* WHERE id = \\? AND available_seats > 0").
		WithArgs(sqlmock.AnyArg(), classID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.CompleteEnrollment(context.Background(), testPayment(classID))

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedSelections)
	assert.False(t, result.AlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_CompleteEnrollment_NoBasketEntryStillCompletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)
	classID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM `selections`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE `classes`").
		WithArgs(sqlmock.AnyArg(), classID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.CompleteEnrollment(context.Background(), testPayment(classID))

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.DeletedSelections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_CompleteEnrollment_NoSeatsRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)
	classID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM `selections`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Full class: the conditional update matches no row.
	mock.ExpectExec("UPDATE `classes` SET .* WHERE id = \\? AND available_seats > 0").
		WithArgs(sqlmock.AnyArg(), classID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT `id` FROM `classes`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(classID.String()))
	mock.ExpectRollback()

	result, err := repo.CompleteEnrollment(context.Background(), testPayment(classID))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNoSeatsAvailable)
	// The rollback expectation above is what proves the ledger insert and
	// basket delete were not committed.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_CompleteEnrollment_UnknownClassRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)
	classID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM `selections`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE `classes`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT `id` FROM `classes`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	result, err := repo.CompleteEnrollment(context.Background(), testPayment(classID))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_CompleteEnrollment_DuplicateTransactionID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)
	classID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnError(&gomysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry 'tx-100' for key 'payments.idx_payments_transaction_id'",
		})
	mock.ExpectRollback()

	result, err := repo.CompleteEnrollment(context.Background(), testPayment(classID))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}
