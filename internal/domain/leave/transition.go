package leave

// Action is an admin or employee operation on a request's main status.
type Action string

const (
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionCancel         Action = "cancel"
	ActionCancelApproved Action = "cancel_approved"
)

type transitionKey struct {
	from   Status
	action Action
}

type transitionResult struct {
	to  Status
	err error
}

var transitions = map[transitionKey]transitionResult{
	{StatusPending, ActionApprove}:        {to: StatusApproved},
	{StatusPending, ActionReject}:         {to: StatusRejected},
	{StatusPending, ActionCancel}:         {to: StatusCancelled},
	{StatusPending, ActionCancelApproved}: {err: ErrInvalidTransition},

	{StatusApproved, ActionApprove}:        {err: ErrAlreadyApproved},
	{StatusApproved, ActionReject}:         {err: ErrAlreadyApproved},
	{StatusApproved, ActionCancel}:         {to: StatusCancelled},
	{StatusApproved, ActionCancelApproved}: {to: StatusCancelled},

	{StatusRejected, ActionApprove}:        {err: ErrAlreadyRejected},
	{StatusRejected, ActionReject}:         {err: ErrAlreadyRejected},
	{StatusRejected, ActionCancel}:         {err: ErrAlreadyRejected},
	{StatusRejected, ActionCancelApproved}: {err: ErrInvalidTransition},

	{StatusCancelled, ActionApprove}:        {err: ErrAlreadyCancelled},
	{StatusCancelled, ActionReject}:         {err: ErrAlreadyCancelled},
	{StatusCancelled, ActionCancel}:         {err: ErrAlreadyCancelled},
	{StatusCancelled, ActionCancelApproved}: {err: ErrAlreadyCancelled},
}

// Transition returns the status a request moves to when action is applied in
// status from, or the error explaining why the action is refused.
func Transition(from Status, action Action) (Status, error) {
	res, ok := transitions[transitionKey{from, action}]
	if !ok {
		return "", ErrInvalidTransition
	}
	if res.err != nil {
		return "", res.err
	}
	return res.to, nil
}

// CreditsBalance reports whether leaving status from for to returns the
// debited days to the employee.
func CreditsBalance(from, to Status) bool {
	return from == StatusApproved && to == StatusCancelled
}

// CancellationAction drives the two-step cancellation sub-state.
type CancellationAction string

const (
	CancellationRequest CancellationAction = "request"
	CancellationApprove CancellationAction = "approve"
	CancellationReject  CancellationAction = "reject"
)

// CancellationTransition returns the next cancellation sub-state. Only approved
// requests take part; an approved cancellation also moves the main status to
// cancelled, which callers apply via Transition(StatusApproved, ActionCancel).
func CancellationTransition(status Status, current CancelRequestStatus, action CancellationAction) (CancelRequestStatus, error) {
	switch action {
	case CancellationRequest:
		if status == StatusCancelled {
			return "", ErrAlreadyCancelled
		}
		if status != StatusApproved {
			return "", ErrInvalidTransition
		}
		switch current {
		case CancelRequestPending:
			return "", ErrCancellationAlreadyPending
		case CancelRequestNone, CancelRequestRejected:
			return CancelRequestPending, nil
		}
		return "", ErrInvalidTransition

	case CancellationApprove:
		if current != CancelRequestPending {
			return "", ErrNoPendingCancellation
		}
		if status != StatusApproved {
			return "", ErrAlreadyCancelled
		}
		return CancelRequestApproved, nil

	case CancellationReject:
		if current != CancelRequestPending {
			return "", ErrNoPendingCancellation
		}
		return CancelRequestRejected, nil
	}
	return "", ErrInvalidTransition
}
