package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
)

type ledgerRepositoryImpl struct {
	db database.Querier
}

func NewLedgerRepository(db database.Querier) employee.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}

// Append implements employee.LedgerRepository.
func (r *ledgerRepositoryImpl) Append(ctx context.Context, entry employee.LedgerEntry) (employee.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ledger_entries (
			employee_id, leave_type, leave_request_id, kind, delta, balance_after, actor_id, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		string(entry.Column),
		entry.LeaveRequestID,
		string(entry.Kind),
		entry.Delta,
		entry.BalanceAfter,
		entry.ActorID,
		entry.Note,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return employee.LedgerEntry{}, fmt.Errorf("failed to append ledger entry: %w", translatePgError(err))
	}
	return entry, nil
}

// ListByEmployee implements employee.LedgerRepository. Newest entries first.
func (r *ledgerRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, column *employee.BalanceColumn, limit int) ([]employee.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, leave_request_id, kind, delta, balance_after, actor_id, note, created_at
		FROM ledger_entries
		WHERE employee_id = $1 AND ($2::text IS NULL OR leave_type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	var leaveType *string
	if column != nil {
		c := string(*column)
		leaveType = &c
	}

	rows, err := q.Query(ctx, query, employeeID, leaveType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", translatePgError(err))
	}
	defer rows.Close()

	var entries []employee.LedgerEntry
	for rows.Next() {
		var (
			e         employee.LedgerEntry
			col, kind string
		)
		if err := rows.Scan(
			&e.ID,
			&e.EmployeeID,
			&col,
			&e.LeaveRequestID,
			&kind,
			&e.Delta,
			&e.BalanceAfter,
			&e.ActorID,
			&e.Note,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Column = employee.BalanceColumn(col)
		e.Kind = employee.LedgerEntryKind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
