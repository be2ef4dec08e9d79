package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/newsagent/backend/internal/domain/subscriber"
)

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindForDate(ctx context.Context, date time.Time, filter shared.Filter) ([]billing.Delivery, error) {
	args := m.Called(ctx, date, filter)
	return args.Get(0).([]billing.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountForDate(ctx context.Context, date time.Time, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, date, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) CreateIfAbsent(ctx context.Context, delivery *billing.Delivery) (*billing.Delivery, bool, error) {
	args := m.Called(ctx, delivery)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*billing.Delivery), args.Bool(1), args.Error(2)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, delivery *billing.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateStatusForDate(ctx context.Context, date time.Time, status billing.DeliveryStatus) (int64, error) {
	args := m.Called(ctx, date, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLastByCustomer(ctx context.Context, customerID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CreateClaiming(ctx context.Context, customerID uuid.UUID, from, to time.Time, build func([]billing.Delivery) (*billing.Invoice, error)) (*billing.Invoice, error) {
	args := m.Called(ctx, customerID, from, to, build)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreateGuarded(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) InvoiceBalance(ctx context.Context, invoiceID uuid.UUID) (*billing.InvoiceBalance, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceBalance), args.Error(1)
}

func (m *MockReportRepository) CustomerBalance(ctx context.Context, customerID uuid.UUID) (*billing.CustomerBalance, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CustomerBalance), args.Error(1)
}

func (m *MockReportRepository) TopPendingCustomers(ctx context.Context, limit int) ([]billing.CustomerBalance, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]billing.CustomerBalance), args.Error(1)
}

func (m *MockReportRepository) TotalPending(ctx context.Context) (valueobject.Money, error) {
	args := m.Called(ctx)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockReportRepository) DailySnapshot(ctx context.Context, date time.Time) (*billing.DailySnapshot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.DailySnapshot), args.Error(1)
}

func (m *MockReportRepository) MonthSnapshot(ctx context.Context, date time.Time) (*billing.MonthSnapshot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MonthSnapshot), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscriber.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriber.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*subscriber.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriber.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindDeliverable(ctx context.Context, date time.Time) ([]subscriber.Subscription, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]subscriber.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]subscriber.Subscription, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]subscriber.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, subscription *subscriber.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

type MockNewsPaperRepository struct {
	mock.Mock
}

func (m *MockNewsPaperRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscriber.NewsPaper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriber.NewsPaper), args.Error(1)
}

func (m *MockNewsPaperRepository) FindByName(ctx context.Context, name string) (*subscriber.NewsPaper, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriber.NewsPaper), args.Error(1)
}

func (m *MockNewsPaperRepository) FindAll(ctx context.Context, filter shared.Filter) ([]subscriber.NewsPaper, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]subscriber.NewsPaper), args.Error(1)
}

func (m *MockNewsPaperRepository) Save(ctx context.Context, paper *subscriber.NewsPaper) error {
	args := m.Called(ctx, paper)
	return args.Error(0)
}
