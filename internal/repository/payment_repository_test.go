package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPaymentRepository_ListByEmail_OrdersBySequence(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "seq", "transaction_id", "email", "class_item_id", "class_name", "amount"}).
		AddRow(uuid.New().String(), 2, "tx-2", "sam@example.com", uuid.New().String(), "Blues Guitar", "75.00").
		AddRow(uuid.New().String(), 1, "tx-1", "sam@example.com", uuid.New().String(), "Jazz Piano", "50.00")

	// created_at has second precision; seq is the strict insertion order.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `payments` WHERE email = ? ORDER BY seq DESC")).
		WithArgs("sam@example.com").
		WillReturnRows(rows)

	payments, err := repo.ListByEmail(context.Background(), "sam@example.com")

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "tx-2", payments[0].TransactionID)
	assert.Greater(t, payments[0].Seq, payments[1].Seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}
