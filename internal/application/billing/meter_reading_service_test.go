package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMeterReadingService_SaveCreatesReading(t *testing.T) {
	ctx := context.Background()
	meterRepo := new(MockMeterReadingRepository)
	billRepo := new(MockBillRepository)
	roomRepo := new(MockRoomRepository)

	room := occupiedRoom(t, date(2026, time.January, 1))
	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	meterRepo.On("FindByRoomAndPeriod", mock.Anything, room.ID, "2026-01").Return(nil, nil)
	meterRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.MeterReading")).Return(nil)

	svc := NewMeterReadingService(meterRepo, billRepo, roomRepo)
	resp, err := svc.SaveMeterReading(ctx, SaveMeterReadingRequest{
		RoomID:     room.ID,
		Period:     "2026-01",
		MeterStart: 100,
		MeterEnd:   150,
		RecordedBy: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.Usage)
	meterRepo.AssertExpectations(t)
}

func TestMeterReadingService_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	meterRepo := new(MockMeterReadingRepository)
	billRepo := new(MockBillRepository)
	roomRepo := new(MockRoomRepository)

	room := occupiedRoom(t, date(2026, time.January, 1))
	existing, err := billing.NewMeterReading(room.ID, "2026-01", 100, 140, "admin")
	require.NoError(t, err)

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	meterRepo.On("FindByRoomAndPeriod", mock.Anything, room.ID, "2026-01").Return(existing, nil)
	billRepo.On("FindOverlapping", mock.Anything, room.ID, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return([]billing.Bill{}, nil)
	meterRepo.On("Save", mock.Anything, existing).Return(nil)

	svc := NewMeterReadingService(meterRepo, billRepo, roomRepo)
	resp, err := svc.SaveMeterReading(ctx, SaveMeterReadingRequest{
		RoomID:     room.ID,
		Period:     "2026-01",
		MeterStart: 100,
		MeterEnd:   150,
		RecordedBy: "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), resp.MeterEnd)
}

func TestMeterReadingService_SaveBlockedByPaidBill(t *testing.T) {
	ctx := context.Background()
	meterRepo := new(MockMeterReadingRepository)
	billRepo := new(MockBillRepository)
	roomRepo := new(MockRoomRepository)

	room := occupiedRoom(t, date(2026, time.January, 1))
	existing, err := billing.NewMeterReading(room.ID, "2026-01", 100, 140, "admin")
	require.NoError(t, err)

	paid := pendingBill(t)
	require.NoError(t, paid.MarkPaid("CASH", ""))

	roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	meterRepo.On("FindByRoomAndPeriod", mock.Anything, room.ID, "2026-01").Return(existing, nil)
	billRepo.On("FindOverlapping", mock.Anything, room.ID, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return([]billing.Bill{*paid}, nil)

	svc := NewMeterReadingService(meterRepo, billRepo, roomRepo)
	_, err = svc.SaveMeterReading(ctx, SaveMeterReadingRequest{
		RoomID:     room.ID,
		Period:     "2026-01",
		MeterStart: 100,
		MeterEnd:   150,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BILL_PAID", domainErr.Code)
	meterRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
