package notification

import (
	"context"
)

// Service defines the notification fan-out and inbox interface
type Service interface {
	// Dispatch hands an intent to the background workers and returns
	// immediately. Recipient resolution, the push attempt, the inbox write
	// and the SSE publish all happen off the caller's path; no failure of
	// any of them ever reaches the caller.
	Dispatch(intent Intent)

	// Inbox operations
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
