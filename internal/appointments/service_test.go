package appointments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ovisslabs/oviss-backend/internal/assignment"
	"github.com/ovisslabs/oviss-backend/internal/catalog"
	"github.com/ovisslabs/oviss-backend/pkg/clock"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/ident"
	"github.com/ovisslabs/oviss-backend/pkg/kv"
	"github.com/ovisslabs/oviss-backend/pkg/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type emitted struct {
	kind  enums.NotificationType
	title string
	msg   string
}

type fakeEmitter struct {
	calls []emitted
}

func (f *fakeEmitter) Emit(ctx context.Context, userID string, kind enums.NotificationType, title, message string) *models.Notification {
	f.calls = append(f.calls, emitted{kind: kind, title: title, msg: message})
	return &models.Notification{ID: "n", Type: kind, Title: title, Message: message}
}

func newTestStore(t *testing.T) *kv.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := kv.New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate kv: %v", err)
	}
	return store
}

var testInstant = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store *kv.Store, emitter *fakeEmitter) Service {
	t.Helper()
	svc, err := NewService(context.Background(), ServiceParams{
		Store:   store,
		Catalog: catalog.Default(),
		Emitter: emitter,
		Clock:   clock.Fixed{Instant: testInstant},
		IDs:     &ident.Sequence{Prefix: "a"},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validRequest() BookingRequest {
	return BookingRequest{
		OutletID:     "o1",
		Date:         "2025-07-02",
		TimeSlot:     "10:00 AM",
		Stylist:      assignment.Specific("s2"),
		ServiceNames: []string{"Premium Haircut"},
	}
}

func TestBookManualKeepsChosenStylist(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	svc := newTestService(t, newTestStore(t), emitter)

	appt, err := svc.Book(ctx, "u1", validRequest())
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if appt.StylistID != "s2" {
		t.Fatalf("expected s2, got %s", appt.StylistID)
	}
	if appt.AssignmentType != enums.AssignmentTypeManual {
		t.Fatalf("expected manual assignment, got %s", appt.AssignmentType)
	}
	if appt.Status != enums.AppointmentStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", appt.Status)
	}

	if len(emitter.calls) != 1 {
		t.Fatalf("expected a single booking notification, got %d", len(emitter.calls))
	}
	if emitter.calls[0].kind != enums.NotificationTypeBooked {
		t.Fatalf("expected booked notification, got %s", emitter.calls[0].kind)
	}
	if emitter.calls[0].msg != "Your appointment at Oviss Salon – Puchong is confirmed." {
		t.Fatalf("unexpected message %q", emitter.calls[0].msg)
	}
}

func TestBookAutoEmitsAssignmentNotification(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	svc := newTestService(t, newTestStore(t), emitter)

	req := validRequest()
	req.Stylist = assignment.Auto()
	appt, err := svc.Book(ctx, "u1", req)
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if appt.StylistID != "s1" {
		t.Fatalf("expected top-ranked stylist on an empty day, got %s", appt.StylistID)
	}
	if appt.AssignmentType != enums.AssignmentTypeSystemAuto {
		t.Fatalf("expected system auto assignment, got %s", appt.AssignmentType)
	}

	if len(emitter.calls) != 2 {
		t.Fatalf("expected booked + assigned notifications, got %d", len(emitter.calls))
	}
	if emitter.calls[0].kind != enums.NotificationTypeBooked {
		t.Fatalf("expected booked first, got %s", emitter.calls[0].kind)
	}
	if emitter.calls[1].kind != enums.NotificationTypeAssigned {
		t.Fatalf("expected assigned second, got %s", emitter.calls[1].kind)
	}
	if emitter.calls[1].msg != "Jonathan will be serving you for your session." {
		t.Fatalf("unexpected message %q", emitter.calls[1].msg)
	}
}

func TestBookAutoAvoidsTakenStylist(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t), &fakeEmitter{})

	req := validRequest()
	req.Stylist = assignment.Specific("s1")
	if _, err := svc.Book(ctx, "u1", req); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	req.Stylist = assignment.Auto()
	appt, err := svc.Book(ctx, "u1", req)
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if appt.StylistID != "s2" {
		t.Fatalf("expected next available stylist, got %s", appt.StylistID)
	}
}

func TestBookValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t), &fakeEmitter{})

	req := BookingRequest{
		OutletID:     "o9",
		Date:         "July 2nd",
		TimeSlot:     "10:30 AM",
		Stylist:      assignment.Specific(""),
		ServiceNames: nil,
	}
	_, err := svc.Book(ctx, "u1", req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := pkgerrors.As(err)
	if appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", appErr.Code())
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", appErr.Details())
	}
	for _, field := range []string{"outletId", "date", "timeSlot", "serviceNames", "stylistId"} {
		if details[field] == "" {
			t.Fatalf("expected detail for %s, got %+v", field, details)
		}
	}
}

func TestBookRejectsUnknownService(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t), &fakeEmitter{})

	req := validRequest()
	req.ServiceNames = []string{"Premium Haircut", "Beard Sculpting"}
	_, err := svc.Book(ctx, "u1", req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestCancelFlipsOnlyTarget(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	svc := newTestService(t, newTestStore(t), emitter)

	first, _ := svc.Book(ctx, "u1", validRequest())
	req := validRequest()
	req.TimeSlot = "11:00 AM"
	second, _ := svc.Book(ctx, "u1", req)

	emitter.calls = nil
	if err := svc.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}

	for _, a := range svc.All(ctx) {
		switch a.ID {
		case first.ID:
			if a.Status != enums.AppointmentStatusCancelled {
				t.Fatalf("expected cancelled, got %s", a.Status)
			}
		case second.ID:
			if a.Status != enums.AppointmentStatusConfirmed {
				t.Fatalf("sibling appointment must stay confirmed, got %s", a.Status)
			}
		}
	}

	if len(emitter.calls) != 1 || emitter.calls[0].kind != enums.NotificationTypeCancelled {
		t.Fatalf("expected one cancelled notification, got %+v", emitter.calls)
	}
}

func TestCancelTwiceIsBenign(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	svc := newTestService(t, newTestStore(t), emitter)

	appt, _ := svc.Book(ctx, "u1", validRequest())
	if err := svc.Cancel(ctx, appt.ID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}

	emitter.calls = nil
	if err := svc.Cancel(ctx, appt.ID); err != nil {
		t.Fatalf("second cancel must be a no-op, got %v", err)
	}
	if len(emitter.calls) != 0 {
		t.Fatalf("second cancel must not notify, got %+v", emitter.calls)
	}
}

func TestCancelUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t), &fakeEmitter{})

	err := svc.Cancel(ctx, "missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestUpcomingPicksNearestConfirmed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t), &fakeEmitter{})

	far := validRequest()
	far.Date = "2025-07-20"
	farAppt, _ := svc.Book(ctx, "u1", far)

	near := validRequest()
	near.Date = "2025-07-03"
	nearAppt, _ := svc.Book(ctx, "u1", near)

	got, err := svc.Upcoming(ctx)
	if err != nil {
		t.Fatalf("unexpected upcoming error: %v", err)
	}
	if got == nil || got.ID != nearAppt.ID {
		t.Fatalf("expected nearest appointment %s, got %+v", nearAppt.ID, got)
	}

	if err := svc.Cancel(ctx, nearAppt.ID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	got, _ = svc.Upcoming(ctx)
	if got == nil || got.ID != farAppt.ID {
		t.Fatalf("cancelled visits must never surface as upcoming, got %+v", got)
	}
}

func TestUpcomingIncludesToday(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestStore(t), &fakeEmitter{})

	req := validRequest()
	req.Date = testInstant.Format(clock.DateLayout)
	appt, _ := svc.Book(ctx, "u1", req)

	got, _ := svc.Upcoming(ctx)
	if got == nil || got.ID != appt.ID {
		t.Fatalf("a visit today counts as upcoming, got %+v", got)
	}
}

func TestPastKeepsAnyStatus(t *testing.T) {
	ctx := context.Background()

	// Past dates never pass booking validation, so seed the store directly
	// and open the service over it.
	store := newTestStore(t)
	seeded := []models.Appointment{
		{ID: "a2", Date: "2025-06-20", Status: enums.AppointmentStatusCancelled},
		{ID: "a1", Date: "2025-06-10", Status: enums.AppointmentStatusConfirmed},
	}
	if err := store.PutJSON(ctx, "appointments", seeded); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	svc := newTestService(t, store, &fakeEmitter{})

	past := svc.Past(ctx)
	if len(past) != 2 {
		t.Fatalf("expected 2 past visits, got %d", len(past))
	}
	if past[0].ID != "a2" || past[1].ID != "a1" {
		t.Fatalf("expected newest-first order, got %s then %s", past[0].ID, past[1].ID)
	}
	if past[1].Status != enums.AppointmentStatusCompleted {
		t.Fatal("an elapsed confirmed visit reads as completed")
	}
	if past[0].Status != enums.AppointmentStatusCancelled {
		t.Fatal("cancelled visits stay cancelled")
	}
}

func TestCollectionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestService(t, store, &fakeEmitter{})

	appt, err := svc.Book(ctx, "u1", validRequest())
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	reopened := newTestService(t, store, &fakeEmitter{})
	all := reopened.All(ctx)
	if len(all) != 1 || all[0].ID != appt.ID {
		t.Fatalf("expected restored collection, got %+v", all)
	}
}
