package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("Leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")
	ErrRemarksRequired       = errors.New("Remarks are required")
	ErrNotRequestOwner       = errors.New("Only the request owner may perform this action")
)
