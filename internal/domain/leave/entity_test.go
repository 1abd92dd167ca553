package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaveRequestStatusIsTerminal(t *testing.T) {
	cases := []struct {
		status LeaveRequestStatus
		want   bool
	}{
		{LeaveRequestStatusPending, false},
		{LeaveRequestStatusApproved, true},
		{LeaveRequestStatusRejected, true},
		{LeaveRequestStatusWithdrawn, true},
		{LeaveRequestStatusCancelled, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.IsTerminal())
		})
	}
}
