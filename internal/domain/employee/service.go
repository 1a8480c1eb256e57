package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	AdjustBalances(ctx context.Context, id string, actorID string, req AdjustBalancesRequest) (EmployeeResponse, error)
	ListLedger(ctx context.Context, id string, filter LedgerFilter) ([]LedgerEntryResponse, error)
}
