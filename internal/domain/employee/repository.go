package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate reads the employee row and holds a write lock on it
	// until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	// AddToBalance applies delta to one balance column and returns the new value.
	AddToBalance(ctx context.Context, id string, column BalanceColumn, delta int) (int, error)
	SetBalances(ctx context.Context, id string, balances Balances) error
}

type LedgerRepository interface {
	Append(ctx context.Context, entry LedgerEntry) (LedgerEntry, error)
	ListByEmployee(ctx context.Context, employeeID string, column *BalanceColumn, limit int) ([]LedgerEntry, error)
}
