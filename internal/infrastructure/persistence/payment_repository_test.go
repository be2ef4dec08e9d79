package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func mustPayment(t *testing.T, invoiceID uuid.UUID, amount string) *billing.Payment {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(amount)
	require.NoError(t, err)
	payment, err := billing.NewPayment(invoiceID, money, time.Now(), billing.ModeCash, "", uuid.New())
	require.NoError(t, err)
	return payment
}

func TestGormPaymentRepository_FindByInvoice(t *testing.T) {
	t.Run("lists payments oldest first", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		day := shared.DateOf(time.Now())

		rows := sqlmock.NewRows([]string{"id", "invoice_id", "amount", "payment_date", "mode", "notes"}).
			AddRow(uuid.New(), invoiceID, "30.00", day.AddDate(0, 0, -2), "CASH", "").
			AddRow(uuid.New(), invoiceID, "20.00", day, "UPI", "second installment")

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE invoice_id = \$1 ORDER BY payment_date ASC, created_at ASC`).
			WithArgs(invoiceID).
			WillReturnRows(rows)

		payments, err := repo.FindByInvoice(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.Len(t, payments, 2)
		assert.Equal(t, "30.00", payments[0].Amount.String())
		assert.Equal(t, billing.ModeUPI, payments[1].Mode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_CreateGuarded(t *testing.T) {
	t.Run("rejects a payment exceeding the pending balance", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows().
				AddRow(invoiceID, 1, uuid.New(), uuid.New(), time.Now(), time.Now(), "50.00", true))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("30.00"))
		mock.ExpectRollback()

		err := repo.CreateGuarded(context.Background(), mustPayment(t, invoiceID, "25.00"))

		assert.Equal(t, billing.ErrOverpayment, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for a missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows())
		mock.ExpectRollback()

		err := repo.CreateGuarded(context.Background(), mustPayment(t, invoiceID, "10.00"))

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_InterfaceCompliance(t *testing.T) {
	repo, _, mockDB := newMockPaymentRepository(t)
	defer mockDB.Close()

	var _ billing.PaymentRepository = repo
}
