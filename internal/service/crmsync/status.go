package crmsync

import (
	"strings"

	"github.com/sevaconnect/booking-api/internal/model"
)

// MapStatus translates the portal's appointment status vocabulary into the
// CRM's. The mapping is total: anything unrecognized, including an empty
// status, comes back SCHEDULED rather than an error.
func MapStatus(local string) model.CRMAppointmentStatus {
	switch strings.ToLower(strings.TrimSpace(local)) {
	case "scheduled":
		return model.CRMStatusScheduled
	case "completed":
		return model.CRMStatusCompleted
	case "cancelled":
		return model.CRMStatusCancelled
	default:
		return model.CRMStatusScheduled
	}
}
