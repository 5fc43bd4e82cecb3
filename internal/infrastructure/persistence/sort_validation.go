package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"bill_number":        true,
	"room_id":            true,
	"period_start":       true,
	"period_end":         true,
	"total_amount":       true,
	"paid_amount":        true,
	"outstanding_amount": true,
	"status":             true,
	"generated_at":       true,
	"paid_at":            true,
}

// MeterReadingSortFields contains allowed sort fields for meter readings
var MeterReadingSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"room_id":     true,
	"period":      true,
	"meter_start": true,
	"meter_end":   true,
	"recorded_at": true,
}

// RoomSortFields contains allowed sort fields for rooms
var RoomSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"property_id":    true,
	"name":           true,
	"base_price":     true,
	"status":         true,
	"occupant_count": true,
	"move_in_date":   true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"address":    true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"property_id": true,
	"category":    true,
	"amount":      true,
	"spent_at":    true,
}
