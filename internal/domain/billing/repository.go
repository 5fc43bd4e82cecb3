package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
)

// BillRepository defines the persistence operations for bills
type BillRepository interface {
	shared.Repository[Bill]

	// FindByBillNumber retrieves a bill by its human-facing number
	FindByBillNumber(ctx context.Context, billNumber string) (*Bill, error)

	// FindByRoom retrieves all bills for a room, newest period first
	FindByRoom(ctx context.Context, roomID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// FindOverlapping retrieves bills of a room whose period overlaps the
	// given inclusive date range, optionally excluding one bill (used when
	// changing an existing bill's period)
	FindOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Bill, error)

	// HasBillBefore reports whether the room has any bill with a period
	// starting before the given date. Used to decide first-bill proration.
	HasBillBefore(ctx context.Context, roomID uuid.UUID, before time.Time) (bool, error)

	// FindByStatus retrieves bills in the given statuses
	FindByStatus(ctx context.Context, statuses []BillStatus, filter shared.Filter) ([]Bill, error)

	// FindInPeriodRange retrieves bills whose period intersects the inclusive
	// [from, to] date range, across all rooms
	FindInPeriodRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Bill, error)

	// FindUnpaidDueWithin retrieves unpaid bills whose period end falls on or
	// before the given date. Drives the reminder sweep.
	FindUnpaidDueWithin(ctx context.Context, dueBy time.Time) ([]Bill, error)

	// SaveWithLock persists the bill only if the stored row still holds the
	// version the aggregate was loaded with, returning ErrConcurrencyConflict
	// otherwise
	SaveWithLock(ctx context.Context, bill *Bill) error

	// CreateInPeriodGuard inserts the bill inside a transaction that first
	// re-checks for overlapping periods on the same room, returning
	// ErrPeriodOverlap if one exists
	CreateInPeriodGuard(ctx context.Context, bill *Bill) error

	// CountByRoom returns how many bills reference the room
	CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)

	// CountByStatus returns how many bills are in the given statuses
	CountByStatus(ctx context.Context, statuses []BillStatus) (int64, error)

	// CountInPeriodRange returns how many bills intersect the inclusive
	// [from, to] date range
	CountInPeriodRange(ctx context.Context, from, to time.Time) (int64, error)

	// NextBillNumber produces the next sequential bill number for a period
	NextBillNumber(ctx context.Context, periodStart time.Time) (string, error)
}

// MeterReadingRepository defines the persistence operations for meter readings
type MeterReadingRepository interface {
	shared.Repository[MeterReading]

	// FindByRoomAndPeriod retrieves the unique reading for a room and
	// "YYYY-MM" period, or nil when absent
	FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period string) (*MeterReading, error)

	// FindByRoom retrieves all readings for a room, newest period first
	FindByRoom(ctx context.Context, roomID uuid.UUID, filter shared.Filter) ([]MeterReading, error)

	// FindLatestByRoom retrieves the most recent reading for a room, or nil
	// when the room has none
	FindLatestByRoom(ctx context.Context, roomID uuid.UUID) (*MeterReading, error)
}

// RateSettingsRepository defines the persistence operations for rate settings
type RateSettingsRepository interface {
	shared.Repository[RateSettings]

	// FindGlobal retrieves the global fallback row, or nil when unset
	FindGlobal(ctx context.Context) (*RateSettings, error)

	// FindByProperty retrieves the override row for a property, or nil when
	// the property has none
	FindByProperty(ctx context.Context, propertyID uuid.UUID) (*RateSettings, error)
}
