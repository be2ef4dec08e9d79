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
	"github.com/stretchr/testify/assert"
)

func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func invoiceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "version", "created_by", "customer_id",
		"from_date", "to_date", "total_amount", "is_locked",
	})
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("loads the invoice with its line items", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		customerID := uuid.New()
		from := shared.DateOf(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
		to := shared.DateOf(time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC))

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows().
				AddRow(invoiceID, 1, uuid.New(), customerID, from, to, "50.00", true))

		mock.ExpectQuery(`SELECT \* FROM "invoice_line_items" WHERE "invoice_line_items"\."invoice_id" = \$1 ORDER BY delivery_date ASC`).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "delivery_id", "delivery_date", "delivery_price"}).
				AddRow(uuid.New(), invoiceID, uuid.New(), from, "5.00").
				AddRow(uuid.New(), invoiceID, uuid.New(), to, "5.00"))

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.NotNil(t, invoice)
		assert.Equal(t, customerID, invoice.CustomerID)
		assert.Equal(t, "50.00", invoice.TotalAmount.String())
		assert.True(t, invoice.IsLocked)
		assert.Len(t, invoice.LineItems, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows())

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindLastByCustomer(t *testing.T) {
	t.Run("returns the invoice with the latest to_date", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		to := shared.DateOf(time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC))

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE customer_id = \$1 ORDER BY to_date DESC, created_at DESC,.* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(invoiceRows().
				AddRow(uuid.New(), 1, uuid.New(), customerID, to.AddDate(0, 0, -9), to, "50.00", true))

		invoice, err := repo.FindLastByCustomer(context.Background(), customerID)

		assert.NoError(t, err)
		assert.NotNil(t, invoice)
		assert.Equal(t, to, shared.DateOf(invoice.ToDate))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when the customer has no invoices", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE customer_id = \$1 ORDER BY to_date DESC, created_at DESC,.* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(invoiceRows())

		invoice, err := repo.FindLastByCustomer(context.Background(), customerID)

		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindAll(t *testing.T) {
	t.Run("searches by customer name or phone", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT .* FROM "invoices" JOIN customers ON customers\.id = invoices\.customer_id WHERE LOWER\(customers\.name\) LIKE \$1 OR LOWER\(customers\.phone\) LIKE \$2 ORDER BY invoices\.to_date DESC`).
			WithArgs("%ramesh%", "%ramesh%").
			WillReturnRows(invoiceRows())

		invoices, err := repo.FindAll(context.Background(), shared.Filter{Search: "Ramesh"})

		assert.NoError(t, err)
		assert.Empty(t, invoices)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Count(t *testing.T) {
	t.Run("counts invoices", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_CreateClaiming(t *testing.T) {
	t.Run("empty selection is passed to build and the transaction rolls back", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "deliveries" WHERE customer_id = \$1 AND .*FOR UPDATE`).
			WillReturnRows(deliveryRows())
		mock.ExpectRollback()

		var seen []billing.Delivery
		invoice, err := repo.CreateClaiming(context.Background(), customerID, from, to,
			func(deliveries []billing.Delivery) (*billing.Invoice, error) {
				seen = deliveries
				return nil, billing.ErrNoBillableDeliveries
			})

		assert.Nil(t, invoice)
		assert.Equal(t, billing.ErrNoBillableDeliveries, err)
		assert.NotNil(t, seen)
		assert.Empty(t, seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("build errors abort without writing anything", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		day := shared.DateOf(time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "deliveries" WHERE customer_id = \$1 AND .*FOR UPDATE`).
			WillReturnRows(deliveryRows().
				AddRow(uuid.New(), customerID, uuid.New(), uuid.New(), day, "DELIVERED", "5.00", false))
		mock.ExpectRollback()

		invoice, err := repo.CreateClaiming(context.Background(), customerID, day, day,
			func(deliveries []billing.Delivery) (*billing.Invoice, error) {
				assert.Len(t, deliveries, 1)
				return nil, billing.ErrDeliveryAlreadyBilled
			})

		assert.Nil(t, invoice)
		assert.Equal(t, billing.ErrDeliveryAlreadyBilled, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_InterfaceCompliance(t *testing.T) {
	repo, _, mockDB := newMockInvoiceRepository(t)
	defer mockDB.Close()

	var _ billing.InvoiceRepository = repo
}
