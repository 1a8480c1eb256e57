package memory

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var e employee.Employee
	err := r.s.run(ctx, func() error {
		found, ok := r.s.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		e = found
		return nil
	})
	return e, err
}

// GetByIDForUpdate is GetByID: the store lock already serializes writers.
func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.s.run(ctx, func() error {
		if _, exists := r.s.employees[newEmployee.ID]; exists {
			return employee.ErrEmployeeIDExists
		}
		if r.emailTaken(newEmployee.Email, "") {
			return employee.ErrEmailExists
		}
		if newEmployee.CreatedAt.IsZero() {
			newEmployee.CreatedAt = time.Now()
		}
		newEmployee.UpdatedAt = newEmployee.CreatedAt
		r.s.employees[newEmployee.ID] = newEmployee
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return newEmployee, nil
}

func (r *employeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	var updated employee.Employee
	err := r.s.run(ctx, func() error {
		e, ok := r.s.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		req.Apply(&e)
		if req.Email != nil && r.emailTaken(e.Email, id) {
			return employee.ErrEmailExists
		}
		e.UpdatedAt = time.Now()
		r.s.employees[id] = e
		updated = e
		return nil
	})
	return updated, err
}

func (r *employeeRepository) AddToBalance(ctx context.Context, id string, column employee.BalanceColumn, delta int) (int, error) {
	var balance int
	err := r.s.run(ctx, func() error {
		e, ok := r.s.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		current, ok := e.Balances.Get(column)
		if !ok {
			return employee.ErrInvalidBalanceType
		}
		balance = current + delta
		e.Balances.Set(column, balance)
		e.UpdatedAt = time.Now()
		r.s.employees[id] = e
		return nil
	})
	return balance, err
}

func (r *employeeRepository) SetBalances(ctx context.Context, id string, balances employee.Balances) error {
	return r.s.run(ctx, func() error {
		e, ok := r.s.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		e.Balances = balances
		e.UpdatedAt = time.Now()
		r.s.employees[id] = e
		return nil
	})
}

func (r *employeeRepository) emailTaken(email, exceptID string) bool {
	for id, e := range r.s.employees {
		if id != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}
