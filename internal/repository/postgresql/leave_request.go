package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days,
	lr.reason, lr.location, lr.status, lr.cancel_request_status, lr.cancel_reason, lr.remarks,
	lr.applied_on, lr.approved_date, lr.approved_by, lr.rejected_date, lr.rejected_by,
	lr.cancelled_date, lr.cancelled_by, lr.document_count, lr.updated_at`

const leaveRequestSelect = `
	SELECT ` + leaveRequestColumns + `,
		(SELECT e.name FROM employees e WHERE e.id = lr.employee_id),
		COALESCE((SELECT array_agg(d.path ORDER BY d.created_at) FROM leave_documents d WHERE d.leave_request_id = lr.id), '{}')
	FROM leave_requests lr`

type leaveRequestRepositoryImpl struct {
	db database.Querier
}

func NewLeaveRequestRepository(db database.Querier) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// scanLeaveRequest reads the leaveRequestColumns followed by extra destinations.
func scanLeaveRequest(row pgx.Row, extra ...any) (leave.LeaveRequest, error) {
	var (
		lr                              leave.LeaveRequest
		leaveType, status, cancelStatus string
	)
	dest := []any{
		&lr.ID,
		&lr.EmployeeID,
		&leaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Days,
		&lr.Reason,
		&lr.Location,
		&status,
		&cancelStatus,
		&lr.CancelReason,
		&lr.Remarks,
		&lr.AppliedOn,
		&lr.ApprovedDate,
		&lr.ApprovedBy,
		&lr.RejectedDate,
		&lr.RejectedBy,
		&lr.CancelledDate,
		&lr.CancelledBy,
		&lr.DocumentCount,
		&lr.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.Type = leave.LeaveType(leaveType)
	lr.Status = leave.Status(status)
	lr.CancelRequestStatus = leave.CancelRequestStatus(cancelStatus)
	return lr, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, start_date, end_date, days,
			reason, location, status, cancel_request_status,
			applied_on, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		string(request.Type),
		request.StartDate,
		request.EndDate,
		request.Days,
		request.Reason,
		request.Location,
		string(request.Status),
		string(request.CancelRequestStatus),
		request.AppliedOn,
	).Scan(&request.ID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", translatePgError(err))
	}

	request.UpdatedAt = request.AppliedOn
	if request.DocumentRefs == nil {
		request.DocumentRefs = []string{}
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return r.getOne(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id)
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return r.getOne(ctx, leaveRequestSelect+` WHERE lr.id = $1 FOR UPDATE OF lr`, id)
}

func (r *leaveRequestRepositoryImpl) getOne(ctx context.Context, query string, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var (
		name *string
		refs []string
	)
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id), &name, &refs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", translatePgError(err))
	}
	lr.EmployeeName = name
	lr.DocumentRefs = refs
	if lr.DocumentRefs == nil {
		lr.DocumentRefs = []string{}
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository. Each attached document yields
// its own row.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ResolvedFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.name, d.path
		FROM leave_requests lr
		INNER JOIN employees e ON e.id = lr.employee_id
		LEFT JOIN leave_documents d ON d.leave_request_id = lr.id
		WHERE ($1::text IS NULL OR lr.employee_id = $1)
			AND ($2::text IS NULL OR lr.status = $2)
			AND ($3::text IS NULL OR lr.leave_type = $3)
		ORDER BY lr.applied_on DESC, lr.id DESC
	`

	var status, leaveType *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	if filter.LeaveType != nil {
		t := string(*filter.LeaveType)
		leaveType = &t
	}

	rows, err := q.Query(ctx, query, filter.EmployeeID, status, leaveType)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", translatePgError(err))
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var (
			name string
			path *string
		)
		lr, err := scanLeaveRequest(rows, &name, &path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		lr.EmployeeName = &name
		if path != nil {
			lr.DocumentRefs = []string{*path}
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", translatePgError(err))
	}

	return requests, nil
}

// Update implements leave.LeaveRequestRepository. Owner, type, dates and days
// are immutable and never written.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			cancel_request_status = $2,
			cancel_reason = $3,
			remarks = $4,
			approved_date = $5,
			approved_by = $6,
			rejected_date = $7,
			rejected_by = $8,
			cancelled_date = $9,
			cancelled_by = $10,
			updated_at = $11
		WHERE id = $12
	`

	tag, err := q.Exec(ctx, query,
		string(request.Status),
		string(request.CancelRequestStatus),
		request.CancelReason,
		request.Remarks,
		request.ApprovedDate,
		request.ApprovedBy,
		request.RejectedDate,
		request.RejectedBy,
		request.CancelledDate,
		request.CancelledBy,
		request.UpdatedAt,
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
