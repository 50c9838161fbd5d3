package crmsync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevaconnect/booking-api/internal/model"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		local string
		want  model.CRMAppointmentStatus
	}{
		{"scheduled", model.CRMStatusScheduled},
		{"Scheduled", model.CRMStatusScheduled},
		{"  SCHEDULED  ", model.CRMStatusScheduled},
		{"completed", model.CRMStatusCompleted},
		{"COMPLETED", model.CRMStatusCompleted},
		{"cancelled", model.CRMStatusCancelled},
		{"Cancelled", model.CRMStatusCancelled},
		{"", model.CRMStatusScheduled},
		{"no-show", model.CRMStatusScheduled},
		{"rescheduled", model.CRMStatusScheduled},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapStatus(tc.local), "local status %q", tc.local)
	}
}
