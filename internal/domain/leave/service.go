package leave

import (
	"context"

	"github.com/peakhr/hr-console-go/internal/pkg/page"
)

// Service owns the leave-request lifecycle. Mutating operations return the
// canonical record synchronously; notification fan-out runs as a detached
// task and never affects the returned result.
type Service interface {
	CreateLeaveRequest(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (LeaveRequest, error)
	// CreateLeaveRequestFor submits on behalf of the employee named in the
	// request (proxy submission). The proxy capability is enforced by the
	// transport layer.
	CreateLeaveRequestFor(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, actorID string, req UpdateLeaveRequestRequest) (LeaveRequest, error)

	ApproveLeaveRequest(ctx context.Context, actorID, requestID string) (LeaveRequest, error)
	RejectLeaveRequest(ctx context.Context, actorID string, req RejectRequestRequest) (LeaveRequest, error)
	ApproveLeaveRequestByManager(ctx context.Context, actorID string, req ManagerDecisionRequest) (LeaveRequest, error)
	RejectLeaveRequestByManager(ctx context.Context, actorID string, req ManagerDecisionRequest) (LeaveRequest, error)
	SetManagerRemarks(ctx context.Context, actorID string, req ManagerRemarksRequest) (LeaveRequest, error)
	WithdrawLeaveRequest(ctx context.Context, actorID, requestID string) (LeaveRequest, error)

	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (page.Page[LeaveRequestResponse], error)
	ListMyLeaveRequests(ctx context.Context, employeeID string, filter LeaveRequestFilter) (page.Page[LeaveRequestResponse], error)
}
