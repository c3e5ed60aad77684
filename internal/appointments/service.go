package appointments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ovisslabs/oviss-backend/internal/assignment"
	"github.com/ovisslabs/oviss-backend/internal/catalog"
	"github.com/ovisslabs/oviss-backend/internal/notifications"
	"github.com/ovisslabs/oviss-backend/pkg/clock"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/ident"
	"github.com/ovisslabs/oviss-backend/pkg/kv"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
	"github.com/ovisslabs/oviss-backend/pkg/metrics"
	"github.com/ovisslabs/oviss-backend/pkg/models"
)

const storageKey = "appointments"

// BookingRequest carries everything needed to book a visit. The caller is
// expected to have collected the fields; Book validates them before any
// record is created.
type BookingRequest struct {
	OutletID     string
	Date         string
	TimeSlot     string
	Stylist      assignment.StylistChoice
	ServiceNames []string
}

// Service is the authoritative appointment collection for the session.
type Service interface {
	Book(ctx context.Context, userID string, req BookingRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) error
	Upcoming(ctx context.Context) (*models.Appointment, error)
	Past(ctx context.Context) []models.Appointment
	All(ctx context.Context) []models.Appointment
}

// ServiceParams wires appointment store dependencies.
type ServiceParams struct {
	Store   *kv.Store
	Catalog catalog.Provider
	Emitter notifications.Emitter
	Clock   clock.Clock
	IDs     ident.Generator
	Logger  *logger.Logger
	Metrics *metrics.BookingMetrics
}

type service struct {
	mu      sync.Mutex
	items   []models.Appointment
	store   *kv.Store
	catalog catalog.Provider
	emitter notifications.Emitter
	clock   clock.Clock
	ids     ident.Generator
	logg    *logger.Logger
	metrics *metrics.BookingMetrics
}

// NewService restores the persisted collection and returns the store.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "appointments storage required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog provider required")
	}
	if params.Emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification emitter required")
	}
	if params.Clock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "clock required")
	}
	if params.IDs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "identifier generator required")
	}

	svc := &service{
		store:   params.Store,
		catalog: params.Catalog,
		emitter: params.Emitter,
		clock:   params.Clock,
		ids:     params.IDs,
		logg:    params.Logger,
		metrics: params.Metrics,
	}

	var restored []models.Appointment
	err := params.Store.GetJSON(ctx, storageKey, &restored)
	switch {
	case err == nil:
		svc.items = restored
	case errors.Is(err, kv.ErrNotFound):
		// first run, empty collection
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore appointments")
	}

	return svc, nil
}

// Book validates the request, resolves the stylist, prepends the confirmed
// record and emits the matching notifications. Always succeeds for a valid
// request: auto-assignment never fails thanks to the full-roster fallback.
func (s *service) Book(ctx context.Context, userID string, req BookingRequest) (*models.Appointment, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stylistID := assignment.Resolve(
		req.Stylist,
		assignment.SlotRequest{Date: req.Date, TimeSlot: req.TimeSlot},
		s.catalog.Stylists(),
		s.items,
	)

	record := models.Appointment{
		ID:             s.ids.NewID(),
		UserID:         userID,
		OutletID:       req.OutletID,
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		StylistID:      stylistID,
		AssignmentType: req.Stylist.Type(),
		ServiceNames:   append([]string(nil), req.ServiceNames...),
		Status:         enums.AppointmentStatusConfirmed,
		CreatedAt:      s.clock.Now(),
	}
	s.items = append([]models.Appointment{record}, s.items...)
	s.persistLocked(ctx)
	s.metrics.IncBooking(string(record.AssignmentType))

	outletName := catalog.ShopName
	if outlet, ok := s.catalog.OutletByID(req.OutletID); ok {
		outletName = outlet.Name
	}
	s.emitter.Emit(ctx, userID, enums.NotificationTypeBooked,
		"Appointment booked successfully",
		fmt.Sprintf("Your appointment at %s is confirmed.", outletName))

	if req.Stylist.IsAuto() {
		s.metrics.IncAutoAssignment()
		stylistName := stylistID
		if stylist, ok := s.catalog.StylistByID(stylistID); ok {
			stylistName = stylist.Name
		}
		s.emitter.Emit(ctx, userID, enums.NotificationTypeAssigned,
			"Stylist assigned for your appointment",
			fmt.Sprintf("%s will be serving you for your session.", stylistName))
	}

	if s.logg != nil {
		logCtx := s.logg.WithAppointmentID(ctx, record.ID)
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"outlet_id":  record.OutletID,
			"date":       record.Date,
			"time_slot":  record.TimeSlot,
			"stylist_id": record.StylistID,
			"assignment": record.AssignmentType,
		})
		s.logg.Info(logCtx, "appointment booked")
	}

	return &record, nil
}

// Cancel flips a confirmed record to cancelled. Cancelling an already
// cancelled record is a benign no-op; an unknown id is NOT_FOUND.
func (s *service) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Status == enums.AppointmentStatusCancelled {
			return nil
		}
		s.items[i].Status = enums.AppointmentStatusCancelled
		s.persistLocked(ctx)
		s.metrics.IncCancellation()
		s.emitter.Emit(ctx, s.items[i].UserID, enums.NotificationTypeCancelled,
			"Appointment cancelled",
			"Your appointment has been successfully cancelled.")
		if s.logg != nil {
			s.logg.Info(s.logg.WithAppointmentID(ctx, id), "appointment cancelled")
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
}

// Upcoming returns the nearest confirmed visit on or after today, or nil.
// Cancelled records never qualify, regardless of date.
func (s *service) Upcoming(ctx context.Context) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Today()
	var nearest *models.Appointment
	for i := range s.items {
		a := s.items[i]
		if a.Status != enums.AppointmentStatusConfirmed || a.Date < today {
			continue
		}
		if nearest == nil || a.Date < nearest.Date {
			picked := a
			nearest = &picked
		}
	}
	return nearest, nil
}

// Past returns visits before today, most recent first. Statuses are the
// derived ones: an elapsed confirmed visit reads as completed.
func (s *service) Past(ctx context.Context) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Today()
	var out []models.Appointment
	for _, a := range s.items {
		if a.Date < today {
			a.Status = a.EffectiveStatus(today)
			out = append(out, a)
		}
	}
	return out
}

// All returns a snapshot of the whole collection, newest booking first, with
// derived statuses applied.
func (s *service) All(ctx context.Context) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Today()
	out := append([]models.Appointment(nil), s.items...)
	for i := range out {
		out[i].Status = out[i].EffectiveStatus(today)
	}
	return out
}

func (s *service) validate(req BookingRequest) error {
	details := map[string]string{}

	if req.OutletID == "" {
		details["outletId"] = "is required"
	} else if _, ok := s.catalog.OutletByID(req.OutletID); !ok {
		details["outletId"] = "is unknown"
	}

	if req.Date == "" {
		details["date"] = "is required"
	} else if _, err := time.Parse(clock.DateLayout, req.Date); err != nil {
		details["date"] = "must be a calendar day (YYYY-MM-DD)"
	}

	if req.TimeSlot == "" {
		details["timeSlot"] = "is required"
	} else if !s.validSlot(req.TimeSlot) {
		details["timeSlot"] = "is not a bookable slot"
	}

	if len(req.ServiceNames) == 0 {
		details["serviceNames"] = "at least one service is required"
	} else {
		for _, name := range req.ServiceNames {
			if _, ok := s.catalog.ServiceByName(name); !ok {
				details["serviceNames"] = fmt.Sprintf("unknown service %q", name)
				break
			}
		}
	}

	if !req.Stylist.IsAuto() {
		if req.Stylist.StylistID() == "" {
			details["stylistId"] = "pick a stylist or choose auto-assignment"
		} else if _, ok := s.catalog.StylistByID(req.Stylist.StylistID()); !ok {
			details["stylistId"] = "is unknown"
		}
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid booking request").WithDetails(details)
	}
	return nil
}

func (s *service) validSlot(slot string) bool {
	for _, candidate := range s.catalog.TimeSlots() {
		if candidate == slot {
			return true
		}
	}
	return false
}

func (s *service) persistLocked(ctx context.Context) {
	if err := s.store.PutJSON(ctx, storageKey, s.items); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "appointments persist failed, in-memory state remains authoritative")
	}
}
