package hrcore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/peakhr/hr-console-go/internal/domain/leave"
	"github.com/peakhr/hr-console-go/internal/pkg/page"
)

// leavePayload is the canonical leave-record wire shape of the HR core.
type leavePayload struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Employee   *struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	} `json:"employee,omitempty"`
	LeaveTypeID    string  `json:"leave_type_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      float64 `json:"total_days"`
	Reason         string  `json:"reason"`
	Remarks        *string `json:"remarks,omitempty"`
	ManagerRemarks *string `json:"manager_remarks,omitempty"`
	Status         string  `json:"status"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	Attachments    []struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
		URL      string `json:"url"`
	} `json:"attachments,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (p leavePayload) toEntity() leave.LeaveRequest {
	lr := leave.LeaveRequest{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		LeaveTypeID:    p.LeaveTypeID,
		StartDate:      parseDate(p.StartDate),
		EndDate:        parseDate(p.EndDate),
		TotalDays:      p.TotalDays,
		Reason:         p.Reason,
		Remarks:        p.Remarks,
		ManagerRemarks: p.ManagerRemarks,
		Status:         leave.LeaveRequestStatus(p.Status),
		ApprovedBy:     p.ApprovedBy,
		CreatedAt:      parseTimestamp(p.CreatedAt),
		UpdatedAt:      parseTimestamp(p.UpdatedAt),
	}

	if p.ApprovedAt != nil {
		t := parseTimestamp(*p.ApprovedAt)
		lr.ApprovedAt = &t
	}

	if p.Employee != nil {
		lr.Employee = &leave.EmployeeSnapshot{
			ID:       p.Employee.ID,
			FullName: p.Employee.FullName,
			Email:    p.Employee.Email,
		}
	}

	for _, a := range p.Attachments {
		lr.Attachments = append(lr.Attachments, leave.Attachment{
			ID:       a.ID,
			FileName: a.FileName,
			URL:      a.URL,
		})
	}

	return lr
}

// parseDate accepts the date-only and RFC3339 forms the upstream mixes.
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// Create submits a new leave request.
func (c *Client) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	var payload leavePayload
	if err := c.do(ctx, http.MethodPost, "/leaves", nil, req, &payload); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return payload.toEntity(), nil
}

func (c *Client) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var payload leavePayload
	if err := c.do(ctx, http.MethodGet, "/leaves/"+id, nil, nil, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

// Update patches the supplied fields of a pending request. Attachment
// changes go through the dedicated document endpoints, not this one.
func (c *Client) Update(ctx context.Context, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	body := map[string]interface{}{}
	if req.LeaveTypeID != nil {
		body["leave_type_id"] = *req.LeaveTypeID
	}
	if req.StartDate != nil {
		body["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		body["end_date"] = *req.EndDate
	}
	if req.Reason != nil {
		body["reason"] = *req.Reason
	}

	var payload leavePayload
	if err := c.do(ctx, http.MethodPatch, "/leaves/"+req.ID, nil, body, &payload); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return payload.toEntity(), nil
}

func (c *Client) Approve(ctx context.Context, id, approverID string) (leave.LeaveRequest, error) {
	body := map[string]string{"approved_by": approverID}

	var payload leavePayload
	if err := c.do(ctx, http.MethodPost, "/leaves/"+id+"/approve", nil, body, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

func (c *Client) Reject(ctx context.Context, id, remarks, approverID string) (leave.LeaveRequest, error) {
	body := map[string]string{"remarks": remarks, "approved_by": approverID}

	var payload leavePayload
	if err := c.do(ctx, http.MethodPost, "/leaves/"+id+"/reject", nil, body, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

func (c *Client) ApproveByManager(ctx context.Context, id, remarks, approverID string) (leave.LeaveRequest, error) {
	body := map[string]string{"approved_by": approverID}
	if remarks != "" {
		body["manager_remarks"] = remarks
	}

	var payload leavePayload
	if err := c.do(ctx, http.MethodPost, "/leaves/"+id+"/manager-approval", nil, body, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

func (c *Client) RejectByManager(ctx context.Context, id, remarks, approverID string) (leave.LeaveRequest, error) {
	body := map[string]string{"manager_remarks": remarks, "approved_by": approverID}

	var payload leavePayload
	if err := c.do(ctx, http.MethodPost, "/leaves/"+id+"/manager-rejection", nil, body, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

func (c *Client) SetManagerRemarks(ctx context.Context, id, remarks string) (leave.LeaveRequest, error) {
	body := map[string]string{"manager_remarks": remarks}

	var payload leavePayload
	if err := c.do(ctx, http.MethodPut, "/leaves/"+id+"/manager-remarks", nil, body, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

func (c *Client) Withdraw(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var payload leavePayload
	if err := c.do(ctx, http.MethodPost, "/leaves/"+id+"/withdraw", nil, nil, &payload); err != nil {
		return leave.LeaveRequest{}, err
	}
	return payload.toEntity(), nil
}

func (c *Client) AttachDocuments(ctx context.Context, id string, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}
	body := map[string][]string{"document_ids": documentIDs}
	return c.do(ctx, http.MethodPost, "/leaves/"+id+"/documents", nil, body, nil)
}

func (c *Client) DetachDocuments(ctx context.Context, id string, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}
	body := map[string][]string{"document_ids": documentIDs}
	return c.do(ctx, http.MethodDelete, "/leaves/"+id+"/documents", nil, body, nil)
}

func (c *Client) List(ctx context.Context, filter leave.LeaveRequestFilter) (page.Page[leave.LeaveRequest], error) {
	return c.listLeaves(ctx, "/leaves", filter)
}

func (c *Client) ListByEmployee(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) (page.Page[leave.LeaveRequest], error) {
	return c.listLeaves(ctx, "/employees/"+employeeID+"/leaves", filter)
}

func (c *Client) listLeaves(ctx context.Context, path string, filter leave.LeaveRequestFilter) (page.Page[leave.LeaveRequest], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 25
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.LeaveTypeID != "" {
		query.Set("leave_type_id", filter.LeaveTypeID)
	}

	raw, err := c.doRaw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return page.Page[leave.LeaveRequest]{}, err
	}

	normalized, err := page.Normalize[leavePayload](raw, filter.Page, filter.Limit)
	if err != nil {
		return page.Page[leave.LeaveRequest]{}, fmt.Errorf("failed to normalize leave list: %w", err)
	}

	return page.Map(normalized, leavePayload.toEntity), nil
}
