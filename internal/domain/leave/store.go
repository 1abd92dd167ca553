package leave

import (
	"context"

	"github.com/peakhr/hr-console-go/internal/pkg/page"
)

// Store is the contract of the upstream leave store. Every mutating call
// returns the canonical LeaveRequest as the upstream persisted it.
type Store interface {
	Create(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, req UpdateLeaveRequestRequest) (LeaveRequest, error)

	// Admin-tier decision endpoints.
	Approve(ctx context.Context, id, approverID string) (LeaveRequest, error)
	Reject(ctx context.Context, id, remarks, approverID string) (LeaveRequest, error)

	// Manager-tier decision endpoints, separate from the admin tier.
	ApproveByManager(ctx context.Context, id, remarks, approverID string) (LeaveRequest, error)
	RejectByManager(ctx context.Context, id, remarks, approverID string) (LeaveRequest, error)
	SetManagerRemarks(ctx context.Context, id, remarks string) (LeaveRequest, error)

	Withdraw(ctx context.Context, id string) (LeaveRequest, error)

	AttachDocuments(ctx context.Context, id string, documentIDs []string) error
	DetachDocuments(ctx context.Context, id string, documentIDs []string) error

	List(ctx context.Context, filter LeaveRequestFilter) (page.Page[LeaveRequest], error)
	ListByEmployee(ctx context.Context, employeeID string, filter LeaveRequestFilter) (page.Page[LeaveRequest], error)
}
