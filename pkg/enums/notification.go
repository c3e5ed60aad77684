package enums

import "fmt"

// NotificationType labels entries in the in-app notification log.
type NotificationType string

const (
	NotificationTypeBooked      NotificationType = "booked"
	NotificationTypeCancelled   NotificationType = "cancelled"
	NotificationTypeRescheduled NotificationType = "rescheduled"
	NotificationTypeAssigned    NotificationType = "assigned"
	NotificationTypeReminder    NotificationType = "reminder"
	NotificationTypeMarketing   NotificationType = "marketing"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeBooked,
	NotificationTypeCancelled,
	NotificationTypeRescheduled,
	NotificationTypeAssigned,
	NotificationTypeReminder,
	NotificationTypeMarketing,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
