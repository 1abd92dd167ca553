package hrcore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/peakhr/hr-console-go/internal/domain/notification"
)

// Push delivers a push notification through the HR core's push API. A non-2xx
// response becomes an error; a 2xx body with ok=false is returned as-is and
// left to the caller to log and discard.
func (c *Client) Push(ctx context.Context, req notification.PushRequest) (notification.PushResult, error) {
	var result notification.PushResult
	if err := c.do(ctx, http.MethodPost, "/notifications/push", nil, req, &result); err != nil {
		return notification.PushResult{}, fmt.Errorf("push delivery failed: %w", err)
	}
	return result, nil
}
