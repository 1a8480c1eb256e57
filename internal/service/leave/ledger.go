package leave

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
)

// moveBalance applies delta to the owner's column and journals it. The caller
// must already hold the employee row lock.
func (s *LeaveServiceImpl) moveBalance(ctx context.Context, req leave.LeaveRequest, column employee.BalanceColumn, delta int, kind employee.LedgerEntryKind, actorID, note string) error {
	balance, err := s.employees.AddToBalance(ctx, req.EmployeeID, column, delta)
	if err != nil {
		return err
	}

	requestID := req.ID
	_, err = s.ledger.Append(ctx, employee.LedgerEntry{
		EmployeeID:     req.EmployeeID,
		Column:         column,
		LeaveRequestID: &requestID,
		Kind:           kind,
		Delta:          delta,
		BalanceAfter:   balance,
		ActorID:        actorID,
		Note:           note,
		CreatedAt:      s.now(),
	})
	return err
}

func (s *LeaveServiceImpl) logTransition(ctx context.Context, event string, req leave.LeaveRequest, actor leave.Actor) {
	slog.InfoContext(ctx, "Leave request "+event,
		"leave_request_id", req.ID,
		"employee_id", req.EmployeeID,
		"leave_type", req.Type,
		"days", req.Days,
		"status", req.Status,
		"cancel_request_status", req.CancelRequestStatus,
		"actor_id", actor.ID,
		"origin", actor.Origin,
	)
}
