package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
)

// Policy holds the tunable ledger rules.
type Policy struct {
	DefaultBalances       employee.Balances
	CancelWindow          time.Duration
	NotificationFeedLimit int
	// MaxDaysPerRequest caps days at submission; 0 means unlimited.
	MaxDaysPerRequest int
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultBalances:       employee.DefaultBalances(),
		CancelWindow:          12 * time.Hour,
		NotificationFeedLimit: 50,
		MaxDaysPerRequest:     0,
	}
}

// CheckCancelApproved enforces the guarded cancellation window on an approved request.
func (p Policy) CheckCancelApproved(req LeaveRequest, now time.Time) error {
	if req.Status != StatusApproved {
		if req.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}
		return ErrInvalidTransition
	}
	if req.ApprovedDate == nil || now.Sub(*req.ApprovedDate) > p.CancelWindow {
		return ErrWindowExpired
	}
	if !req.StartDate.After(now) {
		return ErrAlreadyStarted
	}
	return nil
}
