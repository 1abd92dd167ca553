package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakhr/hr-console-go/internal/domain/directory"
	"github.com/peakhr/hr-console-go/internal/domain/notification"
	"github.com/peakhr/hr-console-go/internal/pkg/sse"
)

type fakeRepo struct {
	mu            sync.Mutex
	batches       [][]*notification.Notification
	createBatchFn func(ctx context.Context, rows []*notification.Notification) error

	getByUserIDFn    func(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error)
	getUnreadCountFn func(ctx context.Context, userID string) (int, error)
	markAsReadFn     func(ctx context.Context, ids []string, userID string) error
	markAllAsReadFn  func(ctx context.Context, userID string) error
	deleteFn         func(ctx context.Context, id string, userID string) error
}

func (f *fakeRepo) CreateBatch(ctx context.Context, rows []*notification.Notification) error {
	f.mu.Lock()
	f.batches = append(f.batches, rows)
	f.mu.Unlock()
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, rows)
	}
	return nil
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	if f.getByUserIDFn != nil {
		return f.getByUserIDFn(ctx, userID, page, pageSize, unreadOnly)
	}
	return nil, 0, nil
}

func (f *fakeRepo) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	if f.getUnreadCountFn != nil {
		return f.getUnreadCountFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepo) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	if f.markAsReadFn != nil {
		return f.markAsReadFn(ctx, ids, userID)
	}
	return nil
}

func (f *fakeRepo) MarkAllAsRead(ctx context.Context, userID string) error {
	if f.markAllAsReadFn != nil {
		return f.markAllAsReadFn(ctx, userID)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string, userID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id, userID)
	}
	return nil
}

func (f *fakeRepo) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

type fakePusher struct {
	mu       sync.Mutex
	requests []notification.PushRequest
	pushFn   func(ctx context.Context, req notification.PushRequest) (notification.PushResult, error)
}

func (f *fakePusher) Push(ctx context.Context, req notification.PushRequest) (notification.PushResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.pushFn != nil {
		return f.pushFn(ctx, req)
	}
	return notification.PushResult{OK: true}, nil
}

func (f *fakePusher) sent() []notification.PushRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

type fakeResolver struct {
	resolveFn func(ctx context.Context, employeeID string) (string, bool)
}

func (f *fakeResolver) ResolveManagerID(ctx context.Context, employeeID string) (string, bool) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, employeeID)
	}
	return "", false
}

type fakeDirectory struct {
	mu             sync.Mutex
	adminCalls     int
	managerCalls   int
	searchAdminsFn func(ctx context.Context, limit int) ([]directory.Profile, error)
	listManagersFn func(ctx context.Context, limit int) ([]directory.Profile, error)
}

func (f *fakeDirectory) GetEmployee(ctx context.Context, id string) (directory.Profile, error) {
	return directory.Profile{}, directory.ErrEmployeeNotFound
}

func (f *fakeDirectory) GetTeam(ctx context.Context, id string) (directory.Team, error) {
	return directory.Team{}, directory.ErrTeamNotFound
}

func (f *fakeDirectory) SearchAdmins(ctx context.Context, limit int) ([]directory.Profile, error) {
	f.mu.Lock()
	f.adminCalls++
	f.mu.Unlock()
	if f.searchAdminsFn != nil {
		return f.searchAdminsFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeDirectory) ListManagers(ctx context.Context, limit int) ([]directory.Profile, error) {
	f.mu.Lock()
	f.managerCalls++
	f.mu.Unlock()
	if f.listManagersFn != nil {
		return f.listManagersFn(ctx, limit)
	}
	return nil, nil
}

func newTestService(repo *fakeRepo, pusher *fakePusher, resolver *fakeResolver, dir *fakeDirectory, hub *sse.Hub) notification.Service {
	return NewNotificationService(repo, pusher, resolver, dir, hub, Config{
		WorkerCount: 1,
		QueueSize:   16,
	})
}

func TestDispatchSubmittedNotifiesManager(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}
	resolver := &fakeResolver{
		resolveFn: func(ctx context.Context, employeeID string) (string, bool) {
			return "mgr-1", true
		},
	}
	dir := &fakeDirectory{}
	hub := sse.NewHub()

	events, cleanup := hub.Subscribe("mgr-1")
	defer cleanup()

	svc := newTestService(repo, pusher, resolver, dir, hub)
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveSubmitted,
		ActorID:    "emp-1",
		EmployeeID: "emp-1",
		LeaveID:    "leave-1",
		Message:    "Alice submitted a leave request",
	})
	svc.Stop()

	sent := pusher.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"mgr-1"}, sent[0].RecipientIDs)
	assert.Equal(t, notification.SeverityInfo, sent[0].Type)

	require.Equal(t, 1, repo.batchCount())
	rows := repo.batches[0]
	require.Len(t, rows, 1)
	assert.Equal(t, "mgr-1", rows[0].RecipientID)
	assert.Equal(t, notification.TypeLeaveSubmitted, rows[0].Type)
	require.NotNil(t, rows[0].SenderID)
	assert.Equal(t, "emp-1", *rows[0].SenderID)

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Event)
	default:
		t.Fatal("expected an SSE event for the manager")
	}

	assert.Equal(t, 0, dir.adminCalls)
}

func TestDispatchSubmittedFallsBackToAdmins(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}
	resolver := &fakeResolver{}
	dir := &fakeDirectory{
		searchAdminsFn: func(ctx context.Context, limit int) ([]directory.Profile, error) {
			assert.Equal(t, 5, limit)
			return []directory.Profile{{ID: "adm-1"}, {ID: "adm-2"}}, nil
		},
	}

	svc := newTestService(repo, pusher, resolver, dir, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveSubmitted,
		ActorID:    "emp-1",
		EmployeeID: "emp-1",
		LeaveID:    "leave-1",
		Message:    "submitted",
	})
	svc.Stop()

	sent := pusher.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"adm-1", "adm-2"}, sent[0].RecipientIDs)
	assert.Equal(t, 1, dir.adminCalls)
	assert.Equal(t, 0, dir.managerCalls)
}

func TestDispatchProxyFallsBackToManagers(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}
	resolver := &fakeResolver{}
	dir := &fakeDirectory{
		listManagersFn: func(ctx context.Context, limit int) ([]directory.Profile, error) {
			return []directory.Profile{{ID: "mgr-7"}}, nil
		},
	}

	svc := newTestService(repo, pusher, resolver, dir, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveSubmittedProxy,
		ActorID:    "hr-1",
		EmployeeID: "emp-2",
		LeaveID:    "leave-2",
		Message:    "proxy submitted",
	})
	svc.Stop()

	sent := pusher.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"mgr-7"}, sent[0].RecipientIDs)
	assert.Equal(t, 1, dir.managerCalls)
	assert.Equal(t, 0, dir.adminCalls)
}

func TestDispatchExcludesActorAndDuplicates(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}

	svc := newTestService(repo, pusher, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveApproved,
		ActorID:    "adm-1",
		EmployeeID: "emp-1",
		LeaveID:    "leave-1",
		Message:    "approved",
		Recipients: []string{"emp-1", "emp-1", "adm-1", ""},
	})
	svc.Stop()

	sent := pusher.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"emp-1"}, sent[0].RecipientIDs)
}

func TestDispatchNoRecipientsIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}

	svc := newTestService(repo, pusher, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())

	// The actor approving their own record resolves to nobody.
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveApproved,
		ActorID:    "emp-1",
		EmployeeID: "emp-1",
		LeaveID:    "leave-1",
		Recipients: []string{"emp-1"},
	})
	svc.Stop()

	assert.Empty(t, pusher.sent())
	assert.Equal(t, 0, repo.batchCount())
}

func TestDispatchRejectionGoesOutAsAlert(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}

	svc := newTestService(repo, pusher, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveRejected,
		Severity:   notification.SeverityAlert,
		ActorID:    "adm-1",
		EmployeeID: "emp-1",
		LeaveID:    "leave-1",
		Message:    "rejected",
		Recipients: []string{"emp-1"},
	})
	svc.Stop()

	sent := pusher.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notification.SeverityAlert, sent[0].Type)
}

func TestDispatchPushFailureSkipsInbox(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{
		pushFn: func(ctx context.Context, req notification.PushRequest) (notification.PushResult, error) {
			return notification.PushResult{}, errors.New("connection refused")
		},
	}

	svc := newTestService(repo, pusher, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveApproved,
		ActorID:    "adm-1",
		EmployeeID: "emp-1",
		Recipients: []string{"emp-1"},
	})
	svc.Stop()

	require.Len(t, pusher.sent(), 1)
	assert.Equal(t, 0, repo.batchCount())
}

func TestDispatchPushRejectedSkipsInbox(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{
		pushFn: func(ctx context.Context, req notification.PushRequest) (notification.PushResult, error) {
			return notification.PushResult{OK: false, Message: "quota exceeded", CorrelationID: "corr-1"}, nil
		},
	}

	svc := newTestService(repo, pusher, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveApproved,
		ActorID:    "adm-1",
		EmployeeID: "emp-1",
		Recipients: []string{"emp-1"},
	})
	svc.Stop()

	assert.Equal(t, 0, repo.batchCount())
}

func TestDispatchInboxFailureStillPublishes(t *testing.T) {
	repo := &fakeRepo{
		createBatchFn: func(ctx context.Context, rows []*notification.Notification) error {
			return errors.New("database unavailable")
		},
	}
	pusher := &fakePusher{}
	hub := sse.NewHub()

	events, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	svc := newTestService(repo, pusher, &fakeResolver{}, &fakeDirectory{}, hub)
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveApproved,
		ActorID:    "adm-1",
		EmployeeID: "emp-1",
		Recipients: []string{"emp-1"},
	})
	svc.Stop()

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Event)
	default:
		t.Fatal("expected the live update despite the inbox failure")
	}
}

func TestDispatchFallbackSearchFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{}
	pusher := &fakePusher{}
	dir := &fakeDirectory{
		searchAdminsFn: func(ctx context.Context, limit int) ([]directory.Profile, error) {
			return nil, errors.New("search unavailable")
		},
	}

	svc := newTestService(repo, pusher, &fakeResolver{}, dir, sse.NewHub())
	svc.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveSubmitted,
		ActorID:    "emp-1",
		EmployeeID: "emp-1",
	})
	svc.Stop()

	assert.Empty(t, pusher.sent())
	assert.Equal(t, 0, repo.batchCount())
}

func TestGetNotificationsClampsPaging(t *testing.T) {
	var gotPage, gotPageSize int
	repo := &fakeRepo{
		getByUserIDFn: func(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
			gotPage, gotPageSize = page, pageSize
			return nil, 0, nil
		},
	}

	svc := newTestService(repo, &fakePusher{}, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())
	defer svc.Stop()

	result, err := svc.GetNotifications(context.Background(), "user-1", 0, 500, false)
	require.NoError(t, err)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, 20, gotPageSize)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
}

func TestMarkAsReadDelegatesToRepo(t *testing.T) {
	var gotIDs []string
	var gotUser string
	repo := &fakeRepo{
		markAsReadFn: func(ctx context.Context, ids []string, userID string) error {
			gotIDs, gotUser = ids, userID
			return nil
		},
	}

	svc := newTestService(repo, &fakePusher{}, &fakeResolver{}, &fakeDirectory{}, sse.NewHub())
	defer svc.Stop()

	err := svc.MarkAsRead(context.Background(), "user-1", notification.MarkAsReadRequest{
		NotificationIDs: []string{"n-1", "n-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"n-1", "n-2"}, gotIDs)
	assert.Equal(t, "user-1", gotUser)
}

func TestSubscribeReceivesPublishedNotifications(t *testing.T) {
	hub := sse.NewHub()
	svc := newTestService(&fakeRepo{}, &fakePusher{}, &fakeResolver{}, &fakeDirectory{}, hub)
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "emp-1")
	defer cleanup()

	hub.Publish("emp-1", sse.Event{
		UserID: "emp-1",
		Event:  "notification",
		Data:   notification.NotificationResponse{ID: "n-1", Message: "hello"},
	})

	event := <-events
	assert.Equal(t, "notification", event.Event)
	assert.Equal(t, "n-1", event.Data.ID)
}
