package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveSubmitted      NotificationType = "leave_submitted"
	TypeLeaveSubmittedProxy NotificationType = "leave_submitted_proxy"
	TypeLeaveApproved       NotificationType = "leave_approved"
	TypeLeaveRejected       NotificationType = "leave_rejected"
	TypeManagerRemarks      NotificationType = "manager_remarks"
)

// Severity maps onto the push API's message type. Rejections go out as
// alerts, everything else as plain info.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityAlert Severity = "alert"
)

// Intent is the ephemeral (recipients, message, type) triple a lifecycle
// transition produces. It is created and consumed within one dispatch cycle,
// never persisted and never retried.
type Intent struct {
	Type       NotificationType
	Severity   Severity
	ActorID    string // acting user; never notified about their own action
	EmployeeID string // owner of the affected leave record
	LeaveID    string
	Message    string

	// Recipients, when non-empty, bypasses recipient resolution. Decision
	// events set it to the single affected employee.
	Recipients []string
}

// Notification is an inbox record written after a successful push so the
// console can list what was delivered. It is not a delivery queue.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
