package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peakhr/hr-console-go/internal/domain/directory"
	"github.com/peakhr/hr-console-go/internal/domain/notification"
	"github.com/peakhr/hr-console-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount     int           // default: 2
	QueueSize       int           // default: 256
	DispatchTimeout time.Duration // default: 15 seconds, per intent
	FallbackLimit   int           // default: 5, cap on fallback audiences
}

type service struct {
	repo     notification.Repository
	pusher   notification.Pusher
	resolver directory.Resolver
	dir      directory.Client
	hub      *sse.Hub
	config   Config

	queue  chan notification.Intent
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates the fan-out service and starts its
// background workers. Everything downstream of Dispatch runs on these
// workers; no failure there ever travels back to a lifecycle caller.
func NewNotificationService(
	repo notification.Repository,
	pusher notification.Pusher,
	resolver directory.Resolver,
	dir directory.Client,
	hub *sse.Hub,
	cfg Config,
) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	if cfg.DispatchTimeout == 0 {
		cfg.DispatchTimeout = 15 * time.Second
	}
	if cfg.FallbackLimit == 0 {
		cfg.FallbackLimit = 5
	}

	s := &service{
		repo:     repo,
		pusher:   pusher,
		resolver: resolver,
		dir:      dir,
		hub:      hub,
		config:   cfg,
		queue:    make(chan notification.Intent, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

// Dispatch enqueues an intent and returns immediately. A full queue drops
// the intent: delivery is advisory and must never block or fail the
// operation that produced it.
func (s *service) Dispatch(intent notification.Intent) {
	select {
	case s.queue <- intent:
	default:
		slog.Warn("notification queue full, dropping intent",
			"type", intent.Type, "leave_id", intent.LeaveID)
	}
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case intent := <-s.queue:
			s.process(id, intent)
		case <-s.stopCh:
			// Drain what was queued before the stop.
			for {
				select {
				case intent := <-s.queue:
					s.process(id, intent)
				default:
					return
				}
			}
		}
	}
}

// process carries one intent end to end: resolve recipients, push once,
// record the inbox rows, raise the local UI event. Every failure mode here
// degrades to "nothing happens" plus a log line.
func (s *service) process(workerID int, intent notification.Intent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.DispatchTimeout)
	defer cancel()

	recipients := s.resolveRecipients(ctx, intent)
	recipients = dedupe(recipients, intent.ActorID)
	if len(recipients) == 0 {
		return
	}

	severity := intent.Severity
	if severity == "" {
		severity = notification.SeverityInfo
	}

	result, err := s.pusher.Push(ctx, notification.PushRequest{
		RecipientIDs: recipients,
		Message:      intent.Message,
		Type:         severity,
	})
	if err != nil {
		slog.Error("push delivery failed",
			"worker", workerID, "type", intent.Type, "leave_id", intent.LeaveID, "error", err)
		return
	}
	if !result.OK {
		slog.Error("push API rejected delivery",
			"worker", workerID, "type", intent.Type, "leave_id", intent.LeaveID,
			"correlation_id", result.CorrelationID, "reason", result.Message)
		return
	}

	s.recordAndPublish(ctx, intent, recipients)
}

// resolveRecipients applies the fallback strategies for intents that did not
// name their recipients. Lookup failures are absorbed into an empty result.
func (s *service) resolveRecipients(ctx context.Context, intent notification.Intent) []string {
	if len(intent.Recipients) > 0 {
		return intent.Recipients
	}

	switch intent.Type {
	case notification.TypeLeaveSubmitted:
		if managerID, ok := s.resolver.ResolveManagerID(ctx, intent.EmployeeID); ok {
			return []string{managerID}
		}
		return s.searchFallback(ctx, s.dir.SearchAdmins)

	case notification.TypeLeaveSubmittedProxy:
		if managerID, ok := s.resolver.ResolveManagerID(ctx, intent.EmployeeID); ok {
			return []string{managerID}
		}
		return s.searchFallback(ctx, s.dir.ListManagers)

	default:
		// Decision events always target the affected employee.
		if intent.EmployeeID != "" {
			return []string{intent.EmployeeID}
		}
		return nil
	}
}

func (s *service) searchFallback(ctx context.Context, search func(context.Context, int) ([]directory.Profile, error)) []string {
	profiles, err := search(ctx, s.config.FallbackLimit)
	if err != nil {
		slog.Debug("recipient fallback search failed", "error", err)
		return nil
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// recordAndPublish writes the inbox rows and raises the local UI event. The
// push already happened; an inbox failure is logged and does not suppress
// the live update.
func (s *service) recordAndPublish(ctx context.Context, intent notification.Intent, recipients []string) {
	now := time.Now()
	var sender *string
	if intent.ActorID != "" {
		actor := intent.ActorID
		sender = &actor
	}

	data := map[string]interface{}{
		"leave_id": intent.LeaveID,
	}

	rows := make([]*notification.Notification, len(recipients))
	for i, recipientID := range recipients {
		rows[i] = &notification.Notification{
			ID:          uuid.New().String(),
			RecipientID: recipientID,
			SenderID:    sender,
			Type:        intent.Type,
			Title:       titleFor(intent.Type),
			Message:     intent.Message,
			Data:        data,
			CreatedAt:   now,
		}
	}

	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		slog.Error("failed to record notifications", "type", intent.Type, "error", err)
	}

	for _, row := range rows {
		s.hub.Publish(row.RecipientID, sse.Event{
			UserID: row.RecipientID,
			Event:  "notification",
			Data:   toResponse(row),
		})
	}
}

func titleFor(t notification.NotificationType) string {
	switch t {
	case notification.TypeLeaveSubmitted:
		return "New leave request"
	case notification.TypeLeaveSubmittedProxy:
		return "Leave request submitted on behalf of an employee"
	case notification.TypeLeaveApproved:
		return "Leave request approved"
	case notification.TypeLeaveRejected:
		return "Leave request rejected"
	case notification.TypeManagerRemarks:
		return "Manager commented on your leave request"
	}
	return "Notification"
}

// dedupe removes duplicate ids, empty ids and the acting user. An actor
// never notifies themselves.
func dedupe(ids []string, actorID string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == actorID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications retrieves paginated inbox entries for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete removes a notification
func (s *service) Delete(ctx context.Context, userID string, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, userID)
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					out <- notification.SSEEvent{
						Event: event.Event,
						Data:  resp,
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop drains the queue and stops the workers.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
