package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ovisslabs/oviss-backend/api/middleware"
	"github.com/ovisslabs/oviss-backend/api/responses"
	"github.com/ovisslabs/oviss-backend/api/validators"
	"github.com/ovisslabs/oviss-backend/internal/appointments"
	"github.com/ovisslabs/oviss-backend/internal/assignment"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
)

type bookAppointmentBody struct {
	OutletID     string   `json:"outletId" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	TimeSlot     string   `json:"timeSlot" validate:"required"`
	StylistID    string   `json:"stylistId" validate:"omitempty"`
	AutoAssign   bool     `json:"autoAssign"`
	ServiceNames []string `json:"serviceNames" validate:"required,min=1,dive,required"`
}

// BookAppointment books a visit for the logged-in user. With autoAssign set
// the engine picks the stylist; otherwise stylistId is required.
func BookAppointment(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bookAppointmentBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		choice := assignment.Specific(body.StylistID)
		if body.AutoAssign {
			choice = assignment.Auto()
		}

		appt, err := svc.Book(r.Context(), middleware.UserIDFromContext(r.Context()), appointments.BookingRequest{
			OutletID:     body.OutletID,
			Date:         body.Date,
			TimeSlot:     body.TimeSlot,
			Stylist:      choice,
			ServiceNames: body.ServiceNames,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, appt)
	}
}

// ListAppointments returns the whole collection, newest booking first.
func ListAppointments(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.All(r.Context()))
	}
}

// UpcomingAppointment returns the nearest confirmed visit, or null.
func UpcomingAppointment(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.Upcoming(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, appt)
	}
}

// PastAppointments returns visits before today, most recent first.
func PastAppointments(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Past(r.Context()))
	}
}

// CancelAppointment flips the target visit to cancelled.
func CancelAppointment(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentId")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "appointment id is required"))
			return
		}

		if err := svc.Cancel(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
