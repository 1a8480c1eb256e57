package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// anyArgs matches n placeholders of any value.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestEmployeeRepository_AddToBalance(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SET casual_balance = casual_balance + $1")).
		WithArgs(-3, "E1").
		WillReturnRows(pgxmock.NewRows([]string{"casual_balance"}).AddRow(13))

	balance, err := repo.AddToBalance(context.Background(), "E1", employee.BalanceCasual, -3)
	require.NoError(t, err)
	assert.Equal(t, 13, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_AddToBalance_UnknownEmployee(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SET earned_balance = earned_balance + $1")).
		WithArgs(2, "E404").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.AddToBalance(context.Background(), "E404", employee.BalanceEarned, 2)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_AddToBalance_InvalidColumn(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	_, err := repo.AddToBalance(context.Background(), "E1", employee.BalanceColumn("sick"), 1)
	assert.ErrorIs(t, err, employee.ErrInvalidBalanceType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = $1")).
		WithArgs("E404").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "E404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_Create_Conflicts(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"email", "employees_email_lower_key", employee.ErrEmailExists},
		{"id", "employees_pkey", employee.ErrEmployeeIDExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewEmployeeRepository(mock)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
				WithArgs(anyArgs(10)...).
				WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tt.constraint})

			_, err := repo.Create(context.Background(), employee.Employee{
				ID:       "E1",
				Email:    "asha@example.com",
				Name:     "Asha Rao",
				Status:   employee.StatusActive,
				Balances: employee.DefaultBalances(),
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEmployeeRepository_SetBalances_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("SET casual_balance = $1, earned_balance = $2")).
		WithArgs(1, 2, 3, "E404").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetBalances(context.Background(), "E404", employee.Balances{Casual: 1, Earned: 2, RestrictedHoliday: 3})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Append(t *testing.T) {
	mock := newMock(t)
	repo := NewLedgerRepository(mock)

	requestID := int64(42)
	createdAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ledger_entries")).
		WithArgs("E1", "casual", &requestID, "debit", -2, 14, "A1", "", createdAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	entry, err := repo.Append(context.Background(), employee.LedgerEntry{
		EmployeeID:     "E1",
		Column:         employee.BalanceCasual,
		LeaveRequestID: &requestID,
		Kind:           employee.LedgerDebit,
		Delta:          -2,
		BalanceAfter:   14,
		ActorID:        "A1",
		CreatedAt:      createdAt,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveDocumentRepository_Create_UnknownRequest(t *testing.T) {
	mock := newMock(t)
	repo := NewLeaveDocumentRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leave_documents")).
		WithArgs(anyArgs(8)...).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "leave_documents_leave_request_id_fkey"})

	_, err := repo.Create(context.Background(), leave.LeaveDocument{ID: "d1", LeaveRequestID: 99, Path: "x.pdf"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveDocumentRepository_Create_BumpsCount(t *testing.T) {
	mock := newMock(t)
	repo := NewLeaveDocumentRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leave_documents")).
		WithArgs("d1", int64(42), "x.pdf", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("SET document_count = document_count + 1")).
		WithArgs(pgxmock.AnyArg(), int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	doc, err := repo.Create(context.Background(), leave.LeaveDocument{ID: "d1", LeaveRequestID: 42, Path: "x.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE id = $1")).
		WithArgs("n1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkAsRead(context.Background(), "n1"))
	assert.ErrorIs(t, repo.MarkAsRead(context.Background(), "missing"), notification.ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllAsRead(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("WHERE is_read = FALSE AND (user_id = $1 OR ($2 AND user_id IS NULL))")).
		WithArgs("A1", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 5))

	n, err := repo.MarkAllAsRead(context.Background(), "A1", true)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
