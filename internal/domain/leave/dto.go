package leave

import (
	"time"

	"github.com/peakhr/hr-console-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID    string   `json:"employee_id"`
	LeaveTypeID   string   `json:"leave_type_id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Reason        string   `json:"reason"`
	AttachmentIDs []string `json:"attachment_ids,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequestRequest mutates only the supplied fields of a pending
// request. Attachments are appended and detached independently of the
// scalar field edits.
type UpdateLeaveRequestRequest struct {
	ID                  string   `json:"request_id"`
	LeaveTypeID         *string  `json:"leave_type_id,omitempty"`
	StartDate           *string  `json:"start_date,omitempty"`
	EndDate             *string  `json:"end_date,omitempty"`
	Reason              *string  `json:"reason,omitempty"`
	AddAttachmentIDs    []string `json:"add_attachment_ids,omitempty"`
	RemoveAttachmentIDs []string `json:"remove_attachment_ids,omitempty"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequestRequest struct {
	RequestID string `json:"request_id"`
}

func (r *ApproveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"request_id"`
	Remarks   string `json:"remarks"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManagerDecisionRequest covers the manager-tier approve and reject
// endpoints. Remarks are optional on approval, required on rejection;
// the rejection path enforces that before any upstream call.
type ManagerDecisionRequest struct {
	RequestID string `json:"request_id"`
	Remarks   string `json:"remarks,omitempty"`
}

func (r *ManagerDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ManagerRemarksRequest struct {
	RequestID string `json:"request_id"`
	Remarks   string `json:"remarks"`
}

func (r *ManagerRemarksRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestFilter narrows list queries. Page and Limit always carry the
// values the caller requested so the normalizer can estimate page counts
// when the upstream omits them.
type LeaveRequestFilter struct {
	Status      string
	LeaveTypeID string
	Page        int
	Limit       int
}

type AttachmentResponse struct {
	ID       string `json:"id"`
	FileName string `json:"file_name,omitempty"`
	URL      string `json:"url,omitempty"`
}

type EmployeeSnapshotResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

type LeaveRequestResponse struct {
	ID             string                    `json:"id"`
	EmployeeID     string                    `json:"employee_id"`
	Employee       *EmployeeSnapshotResponse `json:"employee,omitempty"`
	LeaveTypeID    string                    `json:"leave_type_id"`
	StartDate      string                    `json:"start_date"`
	EndDate        string                    `json:"end_date"`
	TotalDays      float64                   `json:"total_days"`
	Reason         string                    `json:"reason"`
	Remarks        *string                   `json:"remarks,omitempty"`
	ManagerRemarks *string                   `json:"manager_remarks,omitempty"`
	Status         LeaveRequestStatus        `json:"status"`
	ApprovedBy     *string                   `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time                `json:"approved_at,omitempty"`
	Attachments    []AttachmentResponse      `json:"attachments,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// ToResponse converts a LeaveRequest entity to its API representation.
func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             lr.ID,
		EmployeeID:     lr.EmployeeID,
		LeaveTypeID:    lr.LeaveTypeID,
		StartDate:      lr.StartDate.Format("2006-01-02"),
		EndDate:        lr.EndDate.Format("2006-01-02"),
		TotalDays:      lr.TotalDays,
		Reason:         lr.Reason,
		Remarks:        lr.Remarks,
		ManagerRemarks: lr.ManagerRemarks,
		Status:         lr.Status,
		ApprovedBy:     lr.ApprovedBy,
		ApprovedAt:     lr.ApprovedAt,
		CreatedAt:      lr.CreatedAt,
		UpdatedAt:      lr.UpdatedAt,
	}

	if lr.Employee != nil {
		resp.Employee = &EmployeeSnapshotResponse{
			ID:       lr.Employee.ID,
			FullName: lr.Employee.FullName,
			Email:    lr.Employee.Email,
		}
	}

	for _, a := range lr.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:       a.ID,
			FileName: a.FileName,
			URL:      a.URL,
		})
	}

	return resp
}

func (lr LeaveRequest) ToResponse() LeaveRequestResponse {
	return ToResponse(lr)
}
