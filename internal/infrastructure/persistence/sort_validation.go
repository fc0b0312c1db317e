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

// GuestSortFields contains allowed sort fields for guests
var GuestSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"full_name":  true,
	"phone":      true,
	"status":     true,
}

// VisitSortFields contains allowed sort fields for visits
var VisitSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"visit_date":         true,
	"signed_in_at":       true,
	"signed_out_at":      true,
	"host_member_number": true,
	"status":             true,
}

// ReciprocalMemberSortFields contains allowed sort fields for reciprocal members
var ReciprocalMemberSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"full_name":         true,
	"partner_club":      true,
	"membership_number": true,
	"valid_until":       true,
	"status":            true,
}

// CaseSortFields contains allowed sort fields for cases
var CaseSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"case_number":       true,
	"client_name":       true,
	"status":            true,
	"next_hearing_date": true,
	"assigned_lawyer":   true,
}

// TaskSortFields contains allowed sort fields for tasks
var TaskSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"due_date":   true,
	"priority":   true,
	"status":     true,
	"assignee":   true,
}

// MessageSortFields contains allowed sort fields for the SMS log
var MessageSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"recipient":    true,
	"provider":     true,
	"status":       true,
	"sent_at":      true,
	"delivered_at": true,
}

// UserSortFields contains allowed sort fields for staff accounts
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"role":          true,
	"last_login_at": true,
}
