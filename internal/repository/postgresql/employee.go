package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, email, name, designation, avatar_url, status,
	casual_balance, earned_balance, restricted_holiday_balance, created_at, updated_at`

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e      employee.Employee
		status string
	)
	err := row.Scan(
		&e.ID,
		&e.Email,
		&e.Name,
		&e.Designation,
		&e.AvatarURL,
		&status,
		&e.Balances.Casual,
		&e.Balances.Earned,
		&e.Balances.RestrictedHoliday,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	e.Status = employee.Status(status)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", translatePgError(err))
	}
	return e, nil
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 FOR UPDATE`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to lock employee: %w", translatePgError(err))
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, email, name, designation, avatar_url, status,
			casual_balance, earned_balance, restricted_holiday_balance,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.Email,
		newEmployee.Name,
		newEmployee.Designation,
		newEmployee.AvatarURL,
		string(newEmployee.Status),
		newEmployee.Balances.Casual,
		newEmployee.Balances.Earned,
		newEmployee.Balances.RestrictedHoliday,
		newEmployee.CreatedAt,
	))
	if err != nil {
		return employee.Employee{}, r.translateWriteError(err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. Only non-nil fields change;
// an empty avatar_url clears the avatar.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET email = COALESCE($1, email),
			name = COALESCE($2, name),
			designation = COALESCE($3, designation),
			avatar_url = CASE WHEN $4::text IS NULL THEN avatar_url ELSE NULLIF($4::text, '') END,
			status = COALESCE($5, status),
			updated_at = NOW()
		WHERE id = $6
		RETURNING ` + employeeColumns

	var status *string
	if req.Status != nil {
		s := string(*req.Status)
		status = &s
	}

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		trimmed(req.Email),
		trimmed(req.Name),
		trimmed(req.Designation),
		req.AvatarURL,
		status,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, r.translateWriteError(err)
	}
	return updated, nil
}

// AddToBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) AddToBalance(ctx context.Context, id string, column employee.BalanceColumn, delta int) (int, error) {
	sqlColumn, ok := column.SQLColumn()
	if !ok {
		return 0, employee.ErrInvalidBalanceType
	}

	q := GetQuerier(ctx, r.db)

	// sqlColumn comes from a closed set, never from input.
	query := fmt.Sprintf(`
		UPDATE employees
		SET %[1]s = %[1]s + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %[1]s
	`, sqlColumn)

	var balance int
	if err := q.QueryRow(ctx, query, delta, id).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, employee.ErrEmployeeNotFound
		}
		return 0, fmt.Errorf("failed to update %s balance: %w", column, translatePgError(err))
	}
	return balance, nil
}

// SetBalances implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetBalances(ctx context.Context, id string, balances employee.Balances) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET casual_balance = $1, earned_balance = $2, restricted_holiday_balance = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, balances.Casual, balances.Earned, balances.RestrictedHoliday, id)
	if err != nil {
		return fmt.Errorf("failed to set balances: %w", translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) translateWriteError(err error) error {
	constraint := constraintName(err)
	err = translatePgError(err)
	if errors.Is(err, errUniqueViolation) {
		if strings.Contains(constraint, "email") {
			return employee.ErrEmailExists
		}
		return employee.ErrEmployeeIDExists
	}
	return fmt.Errorf("failed to write employee: %w", err)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
