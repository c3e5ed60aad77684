package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ovisslabs/oviss-backend/api/controllers"
	"github.com/ovisslabs/oviss-backend/api/middleware"
	"github.com/ovisslabs/oviss-backend/internal/appointments"
	"github.com/ovisslabs/oviss-backend/internal/catalog"
	"github.com/ovisslabs/oviss-backend/internal/notifications"
	"github.com/ovisslabs/oviss-backend/internal/session"
	"github.com/ovisslabs/oviss-backend/pkg/config"
	"github.com/ovisslabs/oviss-backend/pkg/db"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	sessionManager *session.Manager,
	cat catalog.Provider,
	appointmentsService appointments.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/code", controllers.AuthRequestCode(sessionManager, logg))
		r.Post("/verify", controllers.AuthVerify(sessionManager, logg))
		r.Post("/account", controllers.AuthCreateAccount(sessionManager, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, logg))
		r.Get("/session", controllers.AuthSession(sessionManager, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/services", controllers.CatalogServices(cat, logg))
		r.Get("/outlets", controllers.CatalogOutlets(cat, logg))
		r.Get("/stylists", controllers.CatalogStylists(cat, logg))
		r.Get("/time-slots", controllers.CatalogTimeSlots(cat, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireSession(sessionManager, logg))

		r.Get("/me", controllers.Me(sessionManager, logg))
		r.Patch("/me", controllers.UpdateMe(sessionManager, logg))

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", controllers.ListAppointments(appointmentsService, logg))
			r.Post("/", controllers.BookAppointment(appointmentsService, logg))
			r.Get("/upcoming", controllers.UpcomingAppointment(appointmentsService, logg))
			r.Get("/past", controllers.PastAppointments(appointmentsService, logg))
			r.Delete("/{appointmentId}", controllers.CancelAppointment(appointmentsService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
		})
	})

	return r
}
