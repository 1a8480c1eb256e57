package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
)

const defaultLedgerLimit = 100

type EmployeeServiceImpl struct {
	tx              database.Transactor
	employees       employee.EmployeeRepository
	ledger          employee.LedgerRepository
	defaultBalances employee.Balances
	now             func() time.Time
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository, ledgerRepo employee.LedgerRepository, defaultBalances employee.Balances) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		tx:              tx,
		employees:       employeeRepo,
		ledger:          ledgerRepo,
		defaultBalances: defaultBalances,
		now:             time.Now,
	}
}

// Create implements employee.EmployeeService. Balances default to the ledger
// policy unless the request carries its own.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	balances := s.defaultBalances
	if req.Balances != nil {
		balances = *req.Balances
	}

	created, err := s.employees.Create(ctx, employee.Employee{
		ID:          strings.TrimSpace(req.ID),
		Email:       strings.TrimSpace(req.Email),
		Name:        strings.TrimSpace(req.Name),
		Designation: strings.TrimSpace(req.Designation),
		AvatarURL:   req.AvatarURL,
		Status:      employee.StatusActive,
		Balances:    balances,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "Employee onboarded", "employee_id", created.ID,
		"casual", balances.Casual, "earned", balances.Earned, "restricted_holiday", balances.RestrictedHoliday)
	return employee.NewEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employees.Update(ctx, id, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "Employee updated", "employee_id", id)
	return employee.NewEmployeeResponse(updated), nil
}

// AdjustBalances implements employee.EmployeeService. It overwrites the given
// columns and journals the difference as adjustments. Results may be negative.
func (s *EmployeeServiceImpl) AdjustBalances(ctx context.Context, id string, actorID string, req employee.AdjustBalancesRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var adjusted employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employees.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		now := s.now()
		for _, target := range req.Targets() {
			current, _ := e.Balances.Get(target.Column)
			delta := target.Value - current
			if delta == 0 {
				continue
			}
			e.Balances.Set(target.Column, target.Value)
			if _, err := s.ledger.Append(ctx, employee.LedgerEntry{
				EmployeeID:   e.ID,
				Column:       target.Column,
				Kind:         employee.LedgerAdjustment,
				Delta:        delta,
				BalanceAfter: target.Value,
				ActorID:      actorID,
				Note:         req.Note,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
		}

		if err := s.employees.SetBalances(ctx, e.ID, e.Balances); err != nil {
			return err
		}
		e.UpdatedAt = now
		adjusted = e
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "Employee balances adjusted", "employee_id", id, "actor_id", actorID)
	return employee.NewEmployeeResponse(adjusted), nil
}

// ListLedger implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListLedger(ctx context.Context, id string, filter employee.LedgerFilter) ([]employee.LedgerEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var column *employee.BalanceColumn
	if filter.LeaveType != nil {
		c := employee.BalanceColumn(*filter.LeaveType)
		column = &c
	}
	limit := filter.Limit
	if limit == 0 {
		limit = defaultLedgerLimit
	}

	entries, err := s.ledger.ListByEmployee(ctx, id, column, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	responses := make([]employee.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, employee.NewLedgerEntryResponse(e))
	}
	return responses, nil
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)
