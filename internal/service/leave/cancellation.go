package leave

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
)

// Cancel implements leave.LeaveService. Pending and approved requests can be
// cancelled by their owner or an admin; an approved request gets its days back.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, actor leave.Actor, id int64, body leave.CancelLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := body.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	remarks := body.RemarksOrDefault()
	if actor.IsAdmin && remarks == leave.DefaultCancelRemarks {
		remarks = "Cancelled by admin"
	}

	return s.cancel(ctx, actor, id, leave.ActionCancel, remarks, nil)
}

// CancelApproved implements leave.LeaveService. It only cancels approved
// requests still inside the cancel window whose leave has not started.
func (s *LeaveServiceImpl) CancelApproved(ctx context.Context, actor leave.Actor, id int64, body leave.ReasonRequest) (leave.LeaveRequestResponse, error) {
	if err := body.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	guard := func(req leave.LeaveRequest) error {
		return s.policy.CheckCancelApproved(req, s.now())
	}
	return s.cancel(ctx, actor, id, leave.ActionCancelApproved, strings.TrimSpace(body.Reason), guard)
}

func (s *LeaveServiceImpl) cancel(ctx context.Context, actor leave.Actor, id int64, action leave.Action, remarks string, guard func(leave.LeaveRequest) error) (leave.LeaveRequestResponse, error) {
	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && req.EmployeeID != actor.ID {
			return leave.ErrNotRequestOwner
		}
		if guard != nil {
			if err := guard(req); err != nil {
				return err
			}
		}

		next, err := leave.Transition(req.Status, action)
		if err != nil {
			return err
		}

		if leave.CreditsBalance(req.Status, next) {
			if err := s.restoreBalance(ctx, req, actor.ID, "leave cancelled"); err != nil {
				return err
			}
		}

		now := s.now()
		req.Status = next
		req.CancelledDate = &now
		req.CancelledBy = &actor.ID
		req.Remarks = &remarks
		// A direct cancellation settles any open two-step request.
		if req.CancelRequestStatus == leave.CancelRequestPending {
			req.CancelRequestStatus = leave.CancelRequestApproved
		}
		req.UpdatedAt = now
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}

		message := cancelledMessage(req, remarks)
		notice := s.ownerNotice(actor, req, notification.TypeLeaveCancelled, message)
		if req.EmployeeID != actor.ID {
			notice = s.adminNotice(actor, req, notification.TypeLeaveCancelled, message)
		}
		if err := s.notify(ctx, notice); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "cancelled", updated, actor)
	return leave.NewLeaveRequestResponse(updated), nil
}

// RequestCancellation implements leave.LeaveService. Only the owner of an
// approved request may ask for it to be cancelled.
func (s *LeaveServiceImpl) RequestCancellation(ctx context.Context, actor leave.Actor, id int64, body leave.ReasonRequest) (leave.LeaveRequestResponse, error) {
	if err := body.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.EmployeeID != actor.ID {
			return leave.ErrNotRequestOwner
		}

		next, err := leave.CancellationTransition(req.Status, req.CancelRequestStatus, leave.CancellationRequest)
		if err != nil {
			return err
		}

		reason := strings.TrimSpace(body.Reason)
		req.CancelRequestStatus = next
		req.CancelReason = &reason
		req.UpdatedAt = s.now()
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}

		if err := s.notify(ctx, s.ownerNotice(actor, req, notification.TypeCancellationRequest, cancellationRequestedMessage(req, reason))); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "cancellation requested", updated, actor)
	return leave.NewLeaveRequestResponse(updated), nil
}

// ApproveCancellation implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveCancellation(ctx context.Context, actor leave.Actor, id int64) (leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin {
		return leave.LeaveRequestResponse{}, leave.ErrAdminOnly
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		nextCancel, err := leave.CancellationTransition(req.Status, req.CancelRequestStatus, leave.CancellationApprove)
		if err != nil {
			return err
		}
		next, err := leave.Transition(req.Status, leave.ActionCancel)
		if err != nil {
			return err
		}

		if leave.CreditsBalance(req.Status, next) {
			if err := s.restoreBalance(ctx, req, actor.ID, "cancellation approved"); err != nil {
				return err
			}
		}

		now := s.now()
		req.Status = next
		req.CancelRequestStatus = nextCancel
		req.CancelledDate = &now
		req.CancelledBy = &actor.ID
		req.UpdatedAt = now
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}

		if err := s.notify(ctx, s.adminNotice(actor, req, notification.TypeCancellationApproved, cancellationApprovedMessage(req))); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "cancellation approved", updated, actor)
	return leave.NewLeaveRequestResponse(updated), nil
}

// RejectCancellation implements leave.LeaveService. The request stays approved
// and the balance is untouched.
func (s *LeaveServiceImpl) RejectCancellation(ctx context.Context, actor leave.Actor, id int64, body leave.RejectCancellationRequest) (leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin {
		return leave.LeaveRequestResponse{}, leave.ErrAdminOnly
	}
	if err := body.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next, err := leave.CancellationTransition(req.Status, req.CancelRequestStatus, leave.CancellationReject)
		if err != nil {
			return err
		}

		req.CancelRequestStatus = next
		if remarks := optionalText(body.Remarks); remarks != nil {
			req.Remarks = remarks
		}
		req.UpdatedAt = s.now()
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}

		if err := s.notify(ctx, s.adminNotice(actor, req, notification.TypeCancellationRejected, cancellationRejectedMessage(req, body.Remarks))); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "cancellation rejected", updated, actor)
	return leave.NewLeaveRequestResponse(updated), nil
}

// restoreBalance locks the owner's row and credits back the approved days.
func (s *LeaveServiceImpl) restoreBalance(ctx context.Context, req leave.LeaveRequest, actorID, note string) error {
	column, debits := req.Type.BalanceColumn()
	if !debits {
		return nil
	}
	if _, err := s.employees.GetByIDForUpdate(ctx, req.EmployeeID); err != nil {
		return err
	}
	return s.moveBalance(ctx, req, column, req.Days, employee.LedgerCredit, actorID, note)
}
