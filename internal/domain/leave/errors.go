package leave

import "errors"

var (
	ErrLeaveRequestNotFound       = errors.New("leave request not found")
	ErrInvalidLeaveType           = errors.New("invalid leave type")
	ErrDesignationRequired        = errors.New("employee has no designation on file")
	ErrInsufficientBalance        = errors.New("insufficient leave balance")
	ErrAlreadyApproved            = errors.New("leave request already approved")
	ErrAlreadyRejected            = errors.New("leave request already rejected")
	ErrAlreadyCancelled           = errors.New("leave request already cancelled")
	ErrInvalidTransition          = errors.New("invalid leave request transition")
	ErrWindowExpired              = errors.New("cancellation window has expired")
	ErrAlreadyStarted             = errors.New("leave has already started")
	ErrNotRequestOwner            = errors.New("leave request belongs to another employee")
	ErrAdminOnly                  = errors.New("admin privileges required")
	ErrCancellationAlreadyPending = errors.New("cancellation already pending")
	ErrNoPendingCancellation      = errors.New("no pending cancellation request")
	ErrMaxDaysExceeded            = errors.New("leave request exceeds maximum days per request")
)
