package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-ledger-go/internal/service/file"
)

type LeaveServiceImpl struct {
	tx            database.Transactor
	requests      leave.LeaveRequestRepository
	documents     leave.LeaveDocumentRepository
	employees     employee.EmployeeRepository
	ledger        employee.LedgerRepository
	notifications notification.Service
	fileService   file.FileService
	policy        leave.Policy
	now           func() time.Time
}

type Option func(*LeaveServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *LeaveServiceImpl) {
		s.now = now
	}
}

func NewLeaveService(
	tx database.Transactor,
	requestRepo leave.LeaveRequestRepository,
	documentRepo leave.LeaveDocumentRepository,
	employeeRepo employee.EmployeeRepository,
	ledgerRepo employee.LedgerRepository,
	notificationService notification.Service,
	fileService file.FileService,
	policy leave.Policy,
	opts ...Option,
) *LeaveServiceImpl {
	s := &LeaveServiceImpl{
		tx:            tx,
		requests:      requestRepo,
		documents:     documentRepo,
		employees:     employeeRepo,
		ledger:        ledgerRepo,
		notifications: notificationService,
		fileService:   fileService,
		policy:        policy,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor leave.Actor, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin || req.EmployeeID == "" {
		req.EmployeeID = actor.ID
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	days := leave.CalculateDays(req.Start(), req.End())
	if s.policy.MaxDaysPerRequest > 0 && days > s.policy.MaxDaysPerRequest {
		return leave.LeaveRequestResponse{}, fmt.Errorf("%w: %d days requested, at most %d allowed", leave.ErrMaxDaysExceeded, days, s.policy.MaxDaysPerRequest)
	}

	var created leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.Status != employee.StatusActive {
			return employee.ErrEmployeeInactive
		}
		if emp.Designation == "" {
			return leave.ErrDesignationRequired
		}

		created, err = s.requests.Create(ctx, leave.LeaveRequest{
			EmployeeID:          emp.ID,
			Type:                req.Type(),
			StartDate:           req.Start(),
			EndDate:             req.End(),
			Days:                days,
			Reason:              req.Reason,
			Location:            req.Location,
			Status:              leave.StatusPending,
			CancelRequestStatus: leave.CancelRequestNone,
			AppliedOn:           s.now(),
		})
		if err != nil {
			return err
		}
		name := emp.Name
		created.EmployeeName = &name

		return s.notify(ctx, s.ownerNotice(actor, created, notification.TypeLeaveRequest, submittedMessage(emp.Name, created)))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logTransition(ctx, "submitted", created, actor)
	return leave.NewLeaveRequestResponse(created), nil
}

// List implements leave.LeaveService. Employees only ever see their own requests.
func (s *LeaveServiceImpl) List(ctx context.Context, actor leave.Actor, filter leave.ListLeavesFilter) ([]leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin {
		own := actor.ID
		filter.EmployeeID = &own
	}

	resolved, ok := filter.Resolve()
	if !ok {
		return []leave.LeaveRequestResponse{}, nil
	}

	rows, err := s.requests.List(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	requests := leave.DeduplicateRequests(rows)
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, actor leave.Actor, id int64) (leave.LeaveRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !actor.IsAdmin && request.EmployeeID != actor.ID {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	return leave.NewLeaveRequestResponse(request), nil
}

func (s *LeaveServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if _, err := s.notifications.Notify(ctx, req); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
