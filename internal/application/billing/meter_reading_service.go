package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/infrastructure/telemetry"
)

// MeterReadingService provides application-level meter reading operations
type MeterReadingService struct {
	meterRepo billing.MeterReadingRepository
	billRepo  billing.BillRepository
	roomRepo  property.RoomRepository
}

// NewMeterReadingService creates a new MeterReadingService
func NewMeterReadingService(
	meterRepo billing.MeterReadingRepository,
	billRepo billing.BillRepository,
	roomRepo property.RoomRepository,
) *MeterReadingService {
	return &MeterReadingService{
		meterRepo: meterRepo,
		billRepo:  billRepo,
		roomRepo:  roomRepo,
	}
}

// SaveMeterReadingRequest is the input for recording meter values
type SaveMeterReadingRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	Period     string    `json:"period" binding:"required,billing_period"`
	MeterStart int64     `json:"meter_start"`
	MeterEnd   int64     `json:"meter_end"`
	RecordedBy string    `json:"recorded_by"`
}

// MeterReadingResponse represents a meter reading in API responses
type MeterReadingResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	Period     string    `json:"period"`
	MeterStart int64     `json:"meter_start"`
	MeterEnd   int64     `json:"meter_end"`
	Usage      int64     `json:"usage"`
	RecordedBy string    `json:"recorded_by,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toMeterReadingResponse(mr *billing.MeterReading) *MeterReadingResponse {
	return &MeterReadingResponse{
		ID:         mr.ID,
		RoomID:     mr.RoomID,
		Period:     mr.Period,
		MeterStart: mr.MeterStart,
		MeterEnd:   mr.MeterEnd,
		Usage:      mr.Usage(),
		RecordedBy: mr.RecordedBy,
		RecordedAt: mr.RecordedAt,
		CreatedAt:  mr.CreatedAt,
		UpdatedAt:  mr.UpdatedAt,
	}
}

// SaveMeterReading records or corrects the meter values for a room and
// period. A reading whose month is covered by a paid bill can no longer be
// changed.
func (s *MeterReadingService) SaveMeterReading(ctx context.Context, req SaveMeterReadingRequest) (*MeterReadingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "meter_reading", "save")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRoomID, req.RoomID.String(),
		telemetry.SpanAttrPeriod, req.Period,
	)

	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	existing, err := s.meterRepo.FindByRoomAndPeriod(ctx, req.RoomID, req.Period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if existing != nil {
		if err := s.ensurePeriodUnlocked(ctx, req.RoomID, req.Period); err != nil {
			return nil, err
		}
		if err := existing.UpdateValues(req.MeterStart, req.MeterEnd, req.RecordedBy); err != nil {
			return nil, err
		}
		if err := s.meterRepo.Save(ctx, existing); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		return toMeterReadingResponse(existing), nil
	}

	reading, err := billing.NewMeterReading(req.RoomID, req.Period, req.MeterStart, req.MeterEnd, req.RecordedBy)
	if err != nil {
		return nil, err
	}
	if err := s.meterRepo.Save(ctx, reading); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return toMeterReadingResponse(reading), nil
}

// GetMeterReading gets the reading for a room and period
func (s *MeterReadingService) GetMeterReading(ctx context.Context, roomID uuid.UUID, period string) (*MeterReadingResponse, error) {
	reading, err := s.meterRepo.FindByRoomAndPeriod(ctx, roomID, period)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Meter reading not found")
	}
	return toMeterReadingResponse(reading), nil
}

// ListMeterReadings lists the readings of a room, newest period first
func (s *MeterReadingService) ListMeterReadings(ctx context.Context, roomID uuid.UUID, page, pageSize int) ([]MeterReadingResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	readings, err := s.meterRepo.FindByRoom(ctx, roomID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MeterReadingResponse, len(readings))
	for i := range readings {
		responses[i] = *toMeterReadingResponse(&readings[i])
	}
	return responses, nil
}

// GetLatestMeterReading gets the most recent reading of a room. Useful as
// the prefill for next month's meter start.
func (s *MeterReadingService) GetLatestMeterReading(ctx context.Context, roomID uuid.UUID) (*MeterReadingResponse, error) {
	reading, err := s.meterRepo.FindLatestByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room has no meter readings")
	}
	return toMeterReadingResponse(reading), nil
}

// DeleteMeterReading deletes a reading unless a paid bill covers its period
func (s *MeterReadingService) DeleteMeterReading(ctx context.Context, id uuid.UUID) error {
	reading, err := s.meterRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reading == nil {
		return shared.NewDomainError("NOT_FOUND", "Meter reading not found")
	}

	if err := s.ensurePeriodUnlocked(ctx, reading.RoomID, reading.Period); err != nil {
		return err
	}

	return s.meterRepo.Delete(ctx, id)
}

// ensurePeriodUnlocked rejects changes to a month already covered by a paid
// bill of the room
func (s *MeterReadingService) ensurePeriodUnlocked(ctx context.Context, roomID uuid.UUID, period string) error {
	monthStart, err := time.Parse(billing.LegacyPeriodLayout, period)
	if err != nil {
		return shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Invalid period %q, expected YYYY-MM", period))
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	bills, err := s.billRepo.FindOverlapping(ctx, roomID, monthStart, monthEnd, nil)
	if err != nil {
		return err
	}
	for i := range bills {
		if bills[i].IsPaid() {
			return shared.NewDomainError("BILL_PAID",
				fmt.Sprintf("Period %s is covered by paid bill %s", period, bills[i].BillNumber))
		}
	}
	return nil
}
