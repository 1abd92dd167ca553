package notification

import "context"

// PushRequest is the payload accepted by the external push API.
type PushRequest struct {
	RecipientIDs []string `json:"recipient_ids"`
	Message      string   `json:"message"`
	Type         Severity `json:"type"`
}

// PushResult is what the push API reports back. CorrelationID, when present,
// is logged with any failure so deliveries can be traced upstream.
type PushResult struct {
	OK            bool   `json:"ok"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// Pusher delivers a push notification. Delivery is best-effort: the caller
// attempts it once and discards failures.
type Pusher interface {
	Push(ctx context.Context, req PushRequest) (PushResult, error)
}
