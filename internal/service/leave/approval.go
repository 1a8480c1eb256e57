package leave

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
)

// Approve implements leave.LeaveService. The request row is locked before the
// employee row; the debit, status change, journal entry and notification
// commit together.
func (s *LeaveServiceImpl) Approve(ctx context.Context, actor leave.Actor, id int64) (leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin {
		return leave.LeaveRequestResponse{}, leave.ErrAdminOnly
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next, err := leave.Transition(req.Status, leave.ActionApprove)
		if err != nil {
			return err
		}
		if !req.Type.IsValid() {
			return fmt.Errorf("%w: %q", leave.ErrInvalidLeaveType, req.Type)
		}

		emp, err := s.employees.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.Status != employee.StatusActive {
			return employee.ErrEmployeeInactive
		}

		column, debits := req.Type.BalanceColumn()
		if debits {
			balance, ok := emp.Balances.Get(column)
			if !ok {
				return fmt.Errorf("%w: %q", leave.ErrInvalidLeaveType, req.Type)
			}
			if balance-req.Days < 0 {
				return fmt.Errorf("%w: %s balance is %d, %d days requested", leave.ErrInsufficientBalance, column, balance, req.Days)
			}
		}

		now := s.now()
		req.Status = next
		req.ApprovedDate = &now
		req.ApprovedBy = &actor.ID
		req.UpdatedAt = now
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}

		if debits {
			if err := s.moveBalance(ctx, req, column, -req.Days, employee.LedgerDebit, actor.ID, "leave approved"); err != nil {
				return err
			}
		}

		if err := s.notify(ctx, s.adminNotice(actor, req, notification.TypeLeaveApproved, approvedMessage(req))); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "approved", updated, actor)
	return leave.NewLeaveRequestResponse(updated), nil
}

// Reject implements leave.LeaveService. Only pending requests can be rejected.
func (s *LeaveServiceImpl) Reject(ctx context.Context, actor leave.Actor, id int64, body leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
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

		next, err := leave.Transition(req.Status, leave.ActionReject)
		if err != nil {
			return err
		}

		now := s.now()
		req.Status = next
		req.RejectedDate = &now
		req.RejectedBy = &actor.ID
		req.Remarks = optionalText(body.Remarks)
		req.UpdatedAt = now
		if err := s.requests.Update(ctx, req); err != nil {
			return err
		}

		if err := s.notify(ctx, s.adminNotice(actor, req, notification.TypeLeaveRejected, rejectedMessage(req))); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "rejected", updated, actor)
	return leave.NewLeaveRequestResponse(updated), nil
}

// adminNotice addresses the request owner, signed by the acting admin.
func (s *LeaveServiceImpl) adminNotice(actor leave.Actor, req leave.LeaveRequest, t notification.NotificationType, message string) notification.CreateNotificationRequest {
	owner := req.EmployeeID
	return notification.CreateNotificationRequest{
		Type:           t,
		Message:        message,
		UserID:         &owner,
		SenderID:       actor.ID,
		SenderName:     leave.DecorateSenderName(actor.Name, actor.Origin),
		SenderAvatar:   actor.Avatar,
		LeaveRequestID: &req.ID,
	}
}

// ownerNotice is broadcast to admins on behalf of the request owner.
func (s *LeaveServiceImpl) ownerNotice(actor leave.Actor, req leave.LeaveRequest, t notification.NotificationType, message string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		Type:           t,
		Message:        message,
		SenderID:       actor.ID,
		SenderName:     leave.DecorateSenderName(actor.Name, actor.Origin),
		SenderAvatar:   actor.Avatar,
		LeaveRequestID: &req.ID,
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
