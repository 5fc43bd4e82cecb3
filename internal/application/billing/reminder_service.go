package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultDueSoonDays is how many days before the period end a bill counts as
// due soon
const DefaultDueSoonDays = 3

// ReminderBucket classifies how urgent an unpaid bill is
type ReminderBucket string

const (
	BucketDueSoon ReminderBucket = "DUE_SOON" // Period ends within the due-soon window
	BucketDueNow  ReminderBucket = "DUE_NOW"  // Period ends today
	BucketOverdue ReminderBucket = "OVERDUE"  // Period already ended
)

// BillReminder is one unpaid bill in the reminder feed
type BillReminder struct {
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	RoomID      uuid.UUID       `json:"room_id"`
	TenantID    *uuid.UUID      `json:"tenant_id,omitempty"`
	PeriodEnd   time.Time       `json:"period_end"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
	Bucket      ReminderBucket  `json:"bucket"`
	DaysOverdue int             `json:"days_overdue"`
}

// ReminderFeed groups unpaid bills by urgency
type ReminderFeed struct {
	DueSoon []BillReminder `json:"due_soon"`
	DueNow  []BillReminder `json:"due_now"`
	Overdue []BillReminder `json:"overdue"`
	AsOf    time.Time      `json:"as_of"`
}

// ReminderService builds the unpaid-bill reminder feed and runs the
// scheduled sweep that logs it
type ReminderService struct {
	billRepo    billing.BillRepository
	logger      *zap.Logger
	dueSoonDays int
}

// NewReminderService creates a new ReminderService
func NewReminderService(billRepo billing.BillRepository, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		billRepo:    billRepo,
		logger:      logger,
		dueSoonDays: DefaultDueSoonDays,
	}
}

// SetDueSoonDays overrides the due-soon window. Values below one are ignored.
func (s *ReminderService) SetDueSoonDays(days int) {
	if days > 0 {
		s.dueSoonDays = days
	}
}

// BuildFeed classifies every unpaid bill whose period end falls inside the
// reminder horizon, relative to asOf
func (s *ReminderService) BuildFeed(ctx context.Context, asOf time.Time) (*ReminderFeed, error) {
	today := billing.NormalizeDate(asOf)
	horizon := today.AddDate(0, 0, s.dueSoonDays)

	bills, err := s.billRepo.FindUnpaidDueWithin(ctx, horizon)
	if err != nil {
		return nil, err
	}

	feed := &ReminderFeed{
		DueSoon: []BillReminder{},
		DueNow:  []BillReminder{},
		Overdue: []BillReminder{},
		AsOf:    today,
	}

	for i := range bills {
		b := &bills[i]
		periodEnd := billing.NormalizeDate(b.PeriodEnd)

		reminder := BillReminder{
			BillID:      b.ID,
			BillNumber:  b.BillNumber,
			RoomID:      b.RoomID,
			TenantID:    b.TenantID,
			PeriodEnd:   b.PeriodEnd,
			Outstanding: b.OutstandingAmount.Amount(),
			Status:      b.Status.String(),
		}

		switch {
		case periodEnd.Before(today):
			reminder.Bucket = BucketOverdue
			reminder.DaysOverdue = int(today.Sub(periodEnd).Hours() / 24)
			feed.Overdue = append(feed.Overdue, reminder)
		case periodEnd.Equal(today):
			reminder.Bucket = BucketDueNow
			feed.DueNow = append(feed.DueNow, reminder)
		default:
			reminder.Bucket = BucketDueSoon
			feed.DueSoon = append(feed.DueSoon, reminder)
		}
	}

	return feed, nil
}

// Sweep builds the feed and logs a summary. Wired to the cron scheduler.
func (s *ReminderService) Sweep(ctx context.Context) error {
	feed, err := s.BuildFeed(ctx, time.Now())
	if err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
		return err
	}

	s.logger.Info("Reminder sweep complete",
		zap.Int("due_soon", len(feed.DueSoon)),
		zap.Int("due_now", len(feed.DueNow)),
		zap.Int("overdue", len(feed.Overdue)),
	)
	return nil
}
