package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ovisslabs/oviss-backend/api/responses"
	"github.com/ovisslabs/oviss-backend/internal/notifications"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
)

// ListNotifications returns the log newest first. Viewing the list marks
// every entry read, mirroring the in-app notification screen.
func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

// MarkNotificationRead flips a single entry's read flag.
func MarkNotificationRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "notificationId")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "notification id is required"))
			return
		}

		if err := svc.MarkRead(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "read"})
	}
}

// UnreadNotificationCount feeds the badge without touching read state.
func UnreadNotificationCount(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]int{"count": svc.UnreadCount(r.Context())})
	}
}
