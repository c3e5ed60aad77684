package models

import (
	"time"

	"github.com/ovisslabs/oviss-backend/pkg/enums"
)

// Appointment is one booked salon visit. Records are append-only: the only
// mutation after creation is the Confirmed -> Cancelled status flip.
type Appointment struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"userId"`
	OutletID       string                  `json:"outletId"`
	Date           string                  `json:"date"`
	TimeSlot       string                  `json:"timeSlot"`
	StylistID      string                  `json:"stylistId"`
	AssignmentType enums.AssignmentType    `json:"assignmentType"`
	ServiceNames   []string                `json:"serviceNames"`
	Status         enums.AppointmentStatus `json:"status"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// EffectiveStatus derives Completed for confirmed visits whose date has
// passed. Dates are calendar days in clock.DateLayout, so a plain string
// comparison orders them.
func (a Appointment) EffectiveStatus(today string) enums.AppointmentStatus {
	if a.Status == enums.AppointmentStatusConfirmed && a.Date < today {
		return enums.AppointmentStatusCompleted
	}
	return a.Status
}
