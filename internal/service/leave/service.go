package leave

import (
	"context"
	"fmt"
	"strings"

	"github.com/peakhr/hr-console-go/internal/domain/leave"
	"github.com/peakhr/hr-console-go/internal/domain/notification"
	"github.com/peakhr/hr-console-go/internal/pkg/page"
	"github.com/peakhr/hr-console-go/internal/pkg/validator"
)

// LeaveService drives the leave-request lifecycle against the upstream
// store. Each mutating operation persists remotely, returns the canonical
// record, and hands a notification intent to the fan-out workers on its way
// out. The store is the authority on legal transitions; the local guards
// only keep the console from issuing transitions that can never succeed.
type LeaveService struct {
	store    leave.Store
	notifier notification.Service
}

func NewLeaveService(store leave.Store, notifier notification.Service) leave.Service {
	return &LeaveService{
		store:    store,
		notifier: notifier,
	}
}

func (s *LeaveService) CreateLeaveRequest(ctx context.Context, actorID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if req.EmployeeID == "" {
		req.EmployeeID = actorID
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := s.store.Create(ctx, req)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.notifier.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveSubmitted,
		Severity:   notification.SeverityInfo,
		ActorID:    actorID,
		EmployeeID: created.EmployeeID,
		LeaveID:    created.ID,
		Message:    submittedMessage(created),
	})

	return created, nil
}

func (s *LeaveService) CreateLeaveRequestFor(ctx context.Context, actorID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if validator.IsEmpty(req.EmployeeID) {
		return leave.LeaveRequest{}, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := s.store.Create(ctx, req)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.notifier.Dispatch(notification.Intent{
		Type:       notification.TypeLeaveSubmittedProxy,
		Severity:   notification.SeverityInfo,
		ActorID:    actorID,
		EmployeeID: created.EmployeeID,
		LeaveID:    created.ID,
		Message:    submittedMessage(created),
	})

	return created, nil
}

// UpdateLeaveRequest edits a pending request. Attachment additions and
// removals go through the dedicated document endpoints; scalar fields are
// patched in one call. No notification is produced.
func (s *LeaveService) UpdateLeaveRequest(ctx context.Context, actorID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	current, err := s.store.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if current.Status.IsTerminal() {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	if len(req.AddAttachmentIDs) > 0 {
		if err := s.store.AttachDocuments(ctx, req.ID, req.AddAttachmentIDs); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to attach documents: %w", err)
		}
	}
	if len(req.RemoveAttachmentIDs) > 0 {
		if err := s.store.DetachDocuments(ctx, req.ID, req.RemoveAttachmentIDs); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to detach documents: %w", err)
		}
	}

	if req.LeaveTypeID == nil && req.StartDate == nil && req.EndDate == nil && req.Reason == nil {
		// Attachment-only edit; refetch for the canonical record.
		return s.store.GetByID(ctx, req.ID)
	}

	updated, err := s.store.Update(ctx, req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return updated, nil
}

// ApproveLeaveRequest is the admin-tier approval.
func (s *LeaveService) ApproveLeaveRequest(ctx context.Context, actorID, requestID string) (leave.LeaveRequest, error) {
	if err := s.guardPending(ctx, requestID); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.store.Approve(ctx, requestID, actorID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecision(notification.TypeLeaveApproved, notification.SeverityInfo, actorID, updated,
		"Your leave request has been approved")

	return updated, nil
}

// RejectLeaveRequest is the admin-tier rejection. The rejection reason is
// required and checked before any upstream call; it lands in the
// admin-visible remarks field.
func (s *LeaveService) RejectLeaveRequest(ctx context.Context, actorID string, req leave.RejectRequestRequest) (leave.LeaveRequest, error) {
	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		return leave.LeaveRequest{}, leave.ErrRemarksRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := s.guardPending(ctx, req.RequestID); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.store.Reject(ctx, req.RequestID, remarks, actorID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecision(notification.TypeLeaveRejected, notification.SeverityAlert, actorID, updated,
		"Your leave request has been rejected")

	return updated, nil
}

// ApproveLeaveRequestByManager is the manager-tier approval; remarks are
// optional here.
func (s *LeaveService) ApproveLeaveRequestByManager(ctx context.Context, actorID string, req leave.ManagerDecisionRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := s.guardPending(ctx, req.RequestID); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.store.ApproveByManager(ctx, req.RequestID, strings.TrimSpace(req.Remarks), actorID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecision(notification.TypeLeaveApproved, notification.SeverityInfo, actorID, updated,
		"Your leave request has been approved by your manager")

	return updated, nil
}

// RejectLeaveRequestByManager is the manager-tier rejection. Remarks are
// required and written to manager_remarks only; the admin remarks field is
// left untouched.
func (s *LeaveService) RejectLeaveRequestByManager(ctx context.Context, actorID string, req leave.ManagerDecisionRequest) (leave.LeaveRequest, error) {
	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		return leave.LeaveRequest{}, leave.ErrRemarksRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := s.guardPending(ctx, req.RequestID); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.store.RejectByManager(ctx, req.RequestID, remarks, actorID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecision(notification.TypeLeaveRejected, notification.SeverityAlert, actorID, updated,
		"Your leave request has been rejected by your manager")

	return updated, nil
}

// SetManagerRemarks lets a manager comment on a pending request without
// deciding it. Not a status transition.
func (s *LeaveService) SetManagerRemarks(ctx context.Context, actorID string, req leave.ManagerRemarksRequest) (leave.LeaveRequest, error) {
	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		return leave.LeaveRequest{}, leave.ErrRemarksRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := s.guardPending(ctx, req.RequestID); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.store.SetManagerRemarks(ctx, req.RequestID, remarks)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecision(notification.TypeManagerRemarks, notification.SeverityInfo, actorID, updated,
		"Your manager commented on your leave request")

	return updated, nil
}

// WithdrawLeaveRequest withdraws a pending request. Only the owner may
// withdraw, and only while the request is still pending; both are checked
// here rather than trusting the calling view to have done so.
func (s *LeaveService) WithdrawLeaveRequest(ctx context.Context, actorID, requestID string) (leave.LeaveRequest, error) {
	current, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if current.Status.IsTerminal() {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}
	if current.EmployeeID != actorID {
		return leave.LeaveRequest{}, leave.ErrNotRequestOwner
	}

	return s.store.Withdraw(ctx, requestID)
}

func (s *LeaveService) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return s.store.GetByID(ctx, requestID)
}

func (s *LeaveService) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (page.Page[leave.LeaveRequestResponse], error) {
	result, err := s.store.List(ctx, filter)
	if err != nil {
		return page.Page[leave.LeaveRequestResponse]{}, err
	}
	return page.Map(result, leave.ToResponse), nil
}

func (s *LeaveService) ListMyLeaveRequests(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) (page.Page[leave.LeaveRequestResponse], error) {
	result, err := s.store.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return page.Page[leave.LeaveRequestResponse]{}, err
	}
	return page.Map(result, leave.ToResponse), nil
}

// guardPending refuses transitions on records already in a terminal state.
func (s *LeaveService) guardPending(ctx context.Context, requestID string) error {
	current, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if current.Status.IsTerminal() {
		return leave.ErrLeaveAlreadyProcessed
	}
	return nil
}

// notifyDecision targets the single affected employee; decision events
// never fall back to a wider audience.
func (s *LeaveService) notifyDecision(t notification.NotificationType, severity notification.Severity, actorID string, record leave.LeaveRequest, message string) {
	s.notifier.Dispatch(notification.Intent{
		Type:       t,
		Severity:   severity,
		ActorID:    actorID,
		EmployeeID: record.EmployeeID,
		LeaveID:    record.ID,
		Message:    message,
		Recipients: []string{record.EmployeeID},
	})
}

func submittedMessage(record leave.LeaveRequest) string {
	interval := fmt.Sprintf("%s to %s",
		record.StartDate.Format("2006-01-02"),
		record.EndDate.Format("2006-01-02"))

	if record.Employee != nil && record.Employee.FullName != "" {
		return fmt.Sprintf("%s submitted a leave request for %s", record.Employee.FullName, interval)
	}
	return fmt.Sprintf("A leave request was submitted for %s", interval)
}
