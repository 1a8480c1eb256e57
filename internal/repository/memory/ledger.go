package memory

import (
	"context"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
)

type ledgerRepository struct {
	s *Store
}

func (r *ledgerRepository) Append(ctx context.Context, entry employee.LedgerEntry) (employee.LedgerEntry, error) {
	err := r.s.run(ctx, func() error {
		if _, ok := r.s.employees[entry.EmployeeID]; !ok {
			return employee.ErrEmployeeNotFound
		}
		r.s.nextLedgerID++
		entry.ID = r.s.nextLedgerID
		r.s.ledger = append(r.s.ledger, entry)
		return nil
	})
	if err != nil {
		return employee.LedgerEntry{}, err
	}
	return entry, nil
}

// ListByEmployee walks the journal backwards, so entries come newest first.
func (r *ledgerRepository) ListByEmployee(ctx context.Context, employeeID string, column *employee.BalanceColumn, limit int) ([]employee.LedgerEntry, error) {
	var entries []employee.LedgerEntry
	err := r.s.run(ctx, func() error {
		for i := len(r.s.ledger) - 1; i >= 0; i-- {
			e := r.s.ledger[i]
			if e.EmployeeID != employeeID {
				continue
			}
			if column != nil && e.Column != *column {
				continue
			}
			entries = append(entries, e)
			if limit > 0 && len(entries) == limit {
				break
			}
		}
		return nil
	})
	return entries, err
}
