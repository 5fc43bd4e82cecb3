package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/kostman/backend/internal/application/billing"
)

// ReminderHandler handles unpaid-bill reminder API endpoints
type ReminderHandler struct {
	BaseHandler
	reminderService *billingapp.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *billingapp.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// GetFeed handles GET /reminders
// An optional as_of query parameter (YYYY-MM-DD) shifts the reference date,
// which is useful for previewing upcoming reminders.
func (h *ReminderHandler) GetFeed(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	feed, err := h.reminderService.BuildFeed(c.Request.Context(), asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, feed)
}

// TriggerSweep handles POST /reminders/sweep
// Runs the same sweep the cron scheduler performs, on demand.
func (h *ReminderHandler) TriggerSweep(c *gin.Context) {
	if err := h.reminderService.Sweep(c.Request.Context()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"status": "sweep completed"})
}
