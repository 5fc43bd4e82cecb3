package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
)

// MeterReading records the electricity meter positions for a room over a
// month bucket. Unique per (room, period); immutable once the bill generated
// from it has been paid.
type MeterReading struct {
	shared.BaseAggregateRoot
	RoomID     uuid.UUID `json:"room_id"`
	Period     string    `json:"period"` // "YYYY-MM"
	MeterStart int64     `json:"meter_start"`
	MeterEnd   int64     `json:"meter_end"`
	RecordedBy string    `json:"recorded_by"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewMeterReading creates a meter reading after validating the period format
// and meter positions
func NewMeterReading(roomID uuid.UUID, period string, meterStart, meterEnd int64, recordedBy string) (*MeterReading, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if _, err := time.Parse(LegacyPeriodLayout, period); err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Invalid period %q, expected YYYY-MM", period))
	}
	if err := validateMeterRange(meterStart, meterEnd); err != nil {
		return nil, err
	}
	return &MeterReading{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		Period:            period,
		MeterStart:        meterStart,
		MeterEnd:          meterEnd,
		RecordedBy:        recordedBy,
		RecordedAt:        time.Now(),
	}, nil
}

// UpdateValues replaces the meter positions. The caller must first verify the
// linked bill is not paid.
func (mr *MeterReading) UpdateValues(meterStart, meterEnd int64, recordedBy string) error {
	if err := validateMeterRange(meterStart, meterEnd); err != nil {
		return err
	}
	mr.MeterStart = meterStart
	mr.MeterEnd = meterEnd
	mr.RecordedBy = recordedBy
	mr.RecordedAt = time.Now()
	mr.Touch()
	mr.IncrementVersion()
	return nil
}

// Usage returns the consumed kWh for the period
func (mr *MeterReading) Usage() int64 {
	return mr.MeterEnd - mr.MeterStart
}

func validateMeterRange(meterStart, meterEnd int64) error {
	if meterStart < 0 {
		return shared.NewDomainError("INVALID_METER", "Meter start cannot be negative")
	}
	if meterEnd < meterStart {
		return shared.NewDomainError("INVALID_METER", fmt.Sprintf("Meter end %d is below meter start %d", meterEnd, meterStart))
	}
	return nil
}
