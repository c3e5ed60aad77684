package notifications

import (
	"context"
	"errors"
	"sync"

	"github.com/ovisslabs/oviss-backend/pkg/clock"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/ident"
	"github.com/ovisslabs/oviss-backend/pkg/kv"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
	"github.com/ovisslabs/oviss-backend/pkg/metrics"
	"github.com/ovisslabs/oviss-backend/pkg/models"
)

const storageKey = "notifications"

// Service maintains the session's notification log, newest first.
type Service interface {
	Emit(ctx context.Context, userID string, kind enums.NotificationType, title, message string) *models.Notification
	List(ctx context.Context) []models.Notification
	MarkRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) int
}

// Emitter is the narrow surface the appointment store depends on.
type Emitter interface {
	Emit(ctx context.Context, userID string, kind enums.NotificationType, title, message string) *models.Notification
}

// ServiceParams wires notification dependencies.
type ServiceParams struct {
	Store   *kv.Store
	Clock   clock.Clock
	IDs     ident.Generator
	Logger  *logger.Logger
	Metrics *metrics.BookingMetrics
}

type service struct {
	mu      sync.Mutex
	items   []models.Notification
	store   *kv.Store
	clock   clock.Clock
	ids     ident.Generator
	logg    *logger.Logger
	metrics *metrics.BookingMetrics
}

// NewService restores the persisted log and returns the service.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications storage required")
	}
	if params.Clock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "clock required")
	}
	if params.IDs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "identifier generator required")
	}

	svc := &service{
		store:   params.Store,
		clock:   params.Clock,
		ids:     params.IDs,
		logg:    params.Logger,
		metrics: params.Metrics,
	}

	var restored []models.Notification
	err := params.Store.GetJSON(ctx, storageKey, &restored)
	switch {
	case err == nil:
		svc.items = restored
	case errors.Is(err, kv.ErrNotFound):
		// first run, empty log
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore notifications")
	}

	return svc, nil
}

// Emit prepends an unread entry and returns the stored record. Persistence is
// best-effort.
func (s *service) Emit(ctx context.Context, userID string, kind enums.NotificationType, title, message string) *models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.Notification{
		ID:        s.ids.NewID(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Timestamp: s.clock.Now(),
		Read:      false,
	}
	s.items = append([]models.Notification{entry}, s.items...)
	s.metrics.IncNotification(string(kind))
	s.persistLocked(ctx)
	return &entry
}

// List returns the log newest first and, as a side effect of the user viewing
// it, marks every unread entry read.
func (s *service) List(ctx context.Context) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]models.Notification(nil), s.items...)

	dirty := false
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			dirty = true
		}
	}
	if dirty {
		s.persistLocked(ctx)
	}
	return out
}

// MarkRead flips a single entry's read flag.
func (s *service) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].Read {
				s.items[i].Read = true
				s.persistLocked(ctx)
			}
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
}

// UnreadCount reports the badge count without mutating read state.
func (s *service) UnreadCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *service) persistLocked(ctx context.Context) {
	if err := s.store.PutJSON(ctx, storageKey, s.items); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "notifications persist failed, in-memory state remains authoritative")
	}
}
