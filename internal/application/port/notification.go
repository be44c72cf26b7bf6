package port

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification.go -destination=mocks/mock_notification.go -package=mock_port

// NotificationType selects how a notice is styled.
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationError
	NotificationWarning
)

var notificationTypeNames = [...]string{
	NotificationInfo:    "info",
	NotificationSuccess: "success",
	NotificationError:   "error",
	NotificationWarning: "warning",
}

// String returns the lowercase name; unknown values read as "info".
func (t NotificationType) String() string {
	if t < 0 || int(t) >= len(notificationTypeNames) {
		return notificationTypeNames[NotificationInfo]
	}
	return notificationTypeNames[t]
}

// NotificationID identifies a shown notice.
type NotificationID string

// Notification is the port for user-visible notices (status line, toast).
// Widgets report side-operation failures through it instead of returning errors.
type Notification interface {
	// Show displays message until ttl elapses. A zero ttl uses the
	// implementation's default.
	Show(ctx context.Context, message string, kind NotificationType, ttl time.Duration) NotificationID

	// Dismiss removes one notice; unknown ids are ignored.
	Dismiss(ctx context.Context, id NotificationID)

	// Clear removes every notice.
	Clear(ctx context.Context)
}
