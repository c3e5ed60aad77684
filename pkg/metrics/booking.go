package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics records booking-engine activity.
type BookingMetrics struct {
	bookings        *prometheus.CounterVec
	autoAssignments prometheus.Counter
	cancellations   prometheus.Counter
	notifications   *prometheus.CounterVec
}

// NewBookingMetrics registers the booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_total",
		Help: "Appointments booked, by assignment type.",
	}, []string{"assignment"})
	autoAssignments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auto_assignments_total",
		Help: "Stylists resolved by the auto-assignment fallback path.",
	})
	cancellations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cancellations_total",
		Help: "Appointments cancelled.",
	})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_emitted_total",
		Help: "Notifications emitted, by type.",
	}, []string{"type"})
	reg.MustRegister(bookings, autoAssignments, cancellations, notifications)
	return &BookingMetrics{
		bookings:        bookings,
		autoAssignments: autoAssignments,
		cancellations:   cancellations,
		notifications:   notifications,
	}
}

// IncBooking increments the booking counter for the assignment type label.
func (b *BookingMetrics) IncBooking(assignment string) {
	if b == nil || b.bookings == nil {
		return
	}
	b.bookings.WithLabelValues(normalizeLabel(assignment)).Inc()
}

// IncAutoAssignment increments the auto-assignment counter.
func (b *BookingMetrics) IncAutoAssignment() {
	if b == nil || b.autoAssignments == nil {
		return
	}
	b.autoAssignments.Inc()
}

// IncCancellation increments the cancellation counter.
func (b *BookingMetrics) IncCancellation() {
	if b == nil || b.cancellations == nil {
		return
	}
	b.cancellations.Inc()
}

// IncNotification increments the emitted counter for the type label.
func (b *BookingMetrics) IncNotification(kind string) {
	if b == nil || b.notifications == nil {
		return
	}
	b.notifications.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
