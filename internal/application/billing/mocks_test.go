package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockBillRepository is a mock implementation of billing.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) FindByBillNumber(ctx context.Context, billNumber string) (*billing.Bill, error) {
	args := m.Called(ctx, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByRoom(ctx context.Context, roomID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, roomID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) HasBillBefore(ctx context.Context, roomID uuid.UUID, before time.Time) (bool, error) {
	args := m.Called(ctx, roomID, before)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) FindByStatus(ctx context.Context, statuses []billing.BillStatus, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, statuses, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindInPeriodRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindUnpaidDueWithin(ctx context.Context, dueBy time.Time) ([]billing.Bill, error) {
	args := m.Called(ctx, dueBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) CreateInPeriodGuard(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) CountByStatus(ctx context.Context, statuses []billing.BillStatus) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) CountInPeriodRange(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) NextBillNumber(ctx context.Context, periodStart time.Time) (string, error) {
	args := m.Called(ctx, periodStart)
	return args.String(0), args.Error(1)
}

// MockMeterReadingRepository is a mock implementation of billing.MeterReadingRepository
type MockMeterReadingRepository struct {
	mock.Mock
}

func (m *MockMeterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.MeterReading, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockMeterReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeterReadingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMeterReadingRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period string) (*billing.MeterReading, error) {
	args := m.Called(ctx, roomID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindByRoom(ctx context.Context, roomID uuid.UUID, filter shared.Filter) ([]billing.MeterReading, error) {
	args := m.Called(ctx, roomID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MeterReading), args.Error(1)
}

func (m *MockMeterReadingRepository) FindLatestByRoom(ctx context.Context, roomID uuid.UUID) (*billing.MeterReading, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MeterReading), args.Error(1)
}

// MockRoomRepository is a mock implementation of property.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, room *property.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]property.Room, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*property.Room, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByStatus(ctx context.Context, status property.RoomStatus, filter shared.Filter) ([]property.Room, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

// MockRateSettingsRepository is a mock implementation of billing.RateSettingsRepository
type MockRateSettingsRepository struct {
	mock.Mock
}

func (m *MockRateSettingsRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RateSettings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RateSettings), args.Error(1)
}

func (m *MockRateSettingsRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.RateSettings, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RateSettings), args.Error(1)
}

func (m *MockRateSettingsRepository) Save(ctx context.Context, settings *billing.RateSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockRateSettingsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRateSettingsRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateSettingsRepository) FindGlobal(ctx context.Context) (*billing.RateSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RateSettings), args.Error(1)
}

func (m *MockRateSettingsRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*billing.RateSettings, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RateSettings), args.Error(1)
}

// stubRateResolver returns a fixed rate card
type stubRateResolver struct {
	card billing.RateCard
	err  error
}

func (s *stubRateResolver) ResolveRateCard(ctx context.Context, propertyID uuid.UUID) (billing.RateCard, error) {
	return s.card, s.err
}
