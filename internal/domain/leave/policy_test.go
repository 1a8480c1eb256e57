package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_CheckCancelApproved(t *testing.T) {
	p := DefaultPolicy()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	approvedAt := func(d time.Duration) *time.Time {
		at := now.Add(-d)
		return &at
	}
	future := now.AddDate(0, 0, 3)

	tests := []struct {
		name    string
		req     LeaveRequest
		wantErr error
	}{
		{
			name: "inside window",
			req:  LeaveRequest{Status: StatusApproved, ApprovedDate: approvedAt(11 * time.Hour), StartDate: future},
		},
		{
			name:    "window expired",
			req:     LeaveRequest{Status: StatusApproved, ApprovedDate: approvedAt(13 * time.Hour), StartDate: future},
			wantErr: ErrWindowExpired,
		},
		{
			name:    "missing approval date",
			req:     LeaveRequest{Status: StatusApproved, StartDate: future},
			wantErr: ErrWindowExpired,
		},
		{
			name:    "already started",
			req:     LeaveRequest{Status: StatusApproved, ApprovedDate: approvedAt(time.Hour), StartDate: now},
			wantErr: ErrAlreadyStarted,
		},
		{
			name:    "pending",
			req:     LeaveRequest{Status: StatusPending, StartDate: future},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cancelled",
			req:     LeaveRequest{Status: StatusCancelled, StartDate: future},
			wantErr: ErrAlreadyCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckCancelApproved(tt.req, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
