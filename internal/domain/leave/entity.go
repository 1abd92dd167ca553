package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusWithdrawn LeaveRequestStatus = "withdrawn"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
// The upstream store is the final authority; this guard only keeps the
// console from issuing transitions that can never succeed.
func (s LeaveRequestStatus) IsTerminal() bool {
	switch s {
	case LeaveRequestStatusApproved, LeaveRequestStatusRejected,
		LeaveRequestStatusWithdrawn, LeaveRequestStatusCancelled:
		return true
	}
	return false
}

// Attachment is an opaque reference to a document held by the upstream store.
type Attachment struct {
	ID       string
	FileName string
	URL      string
}

// EmployeeSnapshot is the denormalized owner info the upstream embeds in a
// leave request for display purposes.
type EmployeeSnapshot struct {
	ID       string
	FullName string
	Email    string
}

// LeaveRequest entity. Fields like TotalDays are computed by the upstream
// store, never locally.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	Employee    *EmployeeSnapshot
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays float64

	Reason         string
	Remarks        *string // admin-authored, written on admin rejection
	ManagerRemarks *string // manager-authored, independent of a decision

	Status     LeaveRequestStatus
	ApprovedBy *string
	ApprovedAt *time.Time

	Attachments []Attachment

	CreatedAt time.Time
	UpdatedAt time.Time
}
