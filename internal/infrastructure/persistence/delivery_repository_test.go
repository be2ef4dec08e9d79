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

func mustDelivery(t *testing.T) *billing.Delivery {
	t.Helper()
	price, err := valueobject.NewMoneyFromString("5.00")
	require.NoError(t, err)
	delivery, err := billing.NewDelivery(uuid.New(), uuid.New(), uuid.New(), time.Now(), price)
	require.NoError(t, err)
	return delivery
}

func newMockDeliveryRepository(t *testing.T) (*GormDeliveryRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormDeliveryRepository(gormDB), mock, mockDB
}

func deliveryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "subscription_id", "news_paper_id",
		"date", "status", "price", "billed",
	})
}

func TestGormDeliveryRepository_FindByID(t *testing.T) {
	t.Run("finds existing delivery", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		deliveryID := uuid.New()
		day := shared.DateOf(time.Now())

		mock.ExpectQuery(`SELECT \* FROM "deliveries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(deliveryID, 1).
			WillReturnRows(deliveryRows().
				AddRow(deliveryID, uuid.New(), uuid.New(), uuid.New(), day, "DELIVERED", "5.00", false))

		delivery, err := repo.FindByID(context.Background(), deliveryID)

		assert.NoError(t, err)
		assert.NotNil(t, delivery)
		assert.Equal(t, billing.StatusDelivered, delivery.Status)
		assert.Equal(t, "5.00", delivery.Price.String())
		assert.False(t, delivery.Billed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing delivery", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		deliveryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "deliveries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(deliveryID, 1).
			WillReturnRows(deliveryRows())

		delivery, err := repo.FindByID(context.Background(), deliveryID)

		assert.Nil(t, delivery)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryRepository_FindForDate(t *testing.T) {
	t.Run("truncates the date to its calendar day", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		noon := time.Date(2025, 10, 3, 12, 30, 0, 0, time.UTC)
		day := shared.DateOf(noon)

		mock.ExpectQuery(`SELECT \* FROM "deliveries" WHERE deliveries\.date = \$1 ORDER BY deliveries\.created_at ASC`).
			WithArgs(day).
			WillReturnRows(deliveryRows().
				AddRow(uuid.New(), uuid.New(), uuid.New(), uuid.New(), day, "DELIVERED", "5.00", false).
				AddRow(uuid.New(), uuid.New(), uuid.New(), uuid.New(), day, "HOLIDAY", "5.00", false))

		deliveries, err := repo.FindForDate(context.Background(), noon, shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, deliveries, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search matches customer name or phone", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		day := shared.DateOf(time.Now())

		mock.ExpectQuery(`SELECT .* FROM "deliveries" JOIN customers ON customers\.id = deliveries\.customer_id WHERE deliveries\.date = \$1 AND \(LOWER\(customers\.name\) LIKE \$2 OR LOWER\(customers\.phone\) LIKE \$3\)`).
			WithArgs(day, "%ravi%", "%ravi%").
			WillReturnRows(deliveryRows().
				AddRow(uuid.New(), uuid.New(), uuid.New(), uuid.New(), day, "DELIVERED", "5.00", false))

		deliveries, err := repo.FindForDate(context.Background(), day, shared.Filter{Search: "Ravi"})

		assert.NoError(t, err)
		assert.Len(t, deliveries, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryRepository_CountForDate(t *testing.T) {
	t.Run("counts deliveries on the date", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		day := shared.DateOf(time.Now())

		mock.ExpectQuery(`SELECT count\(\*\) FROM "deliveries" WHERE deliveries\.date = \$1`).
			WithArgs(day).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountForDate(context.Background(), day, shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count honors the search predicate", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		day := shared.DateOf(time.Now())

		mock.ExpectQuery(`SELECT count\(\*\) FROM "deliveries" JOIN customers ON customers\.id = deliveries\.customer_id WHERE deliveries\.date = \$1 AND \(LOWER\(customers\.name\) LIKE \$2 OR LOWER\(customers\.phone\) LIKE \$3\)`).
			WithArgs(day, "%98765%", "%98765%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountForDate(context.Background(), day, shared.Filter{Search: "98765"})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryRepository_UpdateStatusForDate(t *testing.T) {
	t.Run("overwrites every delivery on the date", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		day := shared.DateOf(time.Now())

		mock.ExpectExec(`UPDATE "deliveries" SET .* WHERE date = \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 7))

		affected, err := repo.UpdateStatusForDate(context.Background(), day, billing.StatusHoliday)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when no deliveries exist for the date", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "deliveries" SET .* WHERE date = \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.UpdateStatusForDate(context.Background(), time.Now(), billing.StatusNotDelivered)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryRepository_Save(t *testing.T) {
	t.Run("updates an existing delivery", func(t *testing.T) {
		repo, mock, mockDB := newMockDeliveryRepository(t)
		defer mockDB.Close()

		delivery := mustDelivery(t)

		mock.ExpectExec(`UPDATE "deliveries" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), delivery)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryRepository_InterfaceCompliance(t *testing.T) {
	repo, _, mockDB := newMockDeliveryRepository(t)
	defer mockDB.Close()

	var _ billing.DeliveryRepository = repo
}
