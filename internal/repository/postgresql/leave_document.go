package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
)

type leaveDocumentRepositoryImpl struct {
	db database.Querier
}

func NewLeaveDocumentRepository(db database.Querier) leave.LeaveDocumentRepository {
	return &leaveDocumentRepositoryImpl{db: db}
}

// Create implements leave.LeaveDocumentRepository. It also bumps the owning
// request's document_count, so callers run it inside a transaction.
func (r *leaveDocumentRepositoryImpl) Create(ctx context.Context, doc leave.LeaveDocument) (leave.LeaveDocument, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO leave_documents (
			id, leave_request_id, path, file_name, content_type, size, uploaded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := q.Exec(ctx, insert,
		doc.ID,
		doc.LeaveRequestID,
		doc.Path,
		doc.FileName,
		doc.ContentType,
		doc.Size,
		doc.UploadedBy,
		doc.CreatedAt,
	); err != nil {
		err = translatePgError(err)
		if errors.Is(err, errForeignKeyViolation) {
			return leave.LeaveDocument{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveDocument{}, fmt.Errorf("failed to create leave document: %w", err)
	}

	bump := `
		UPDATE leave_requests
		SET document_count = document_count + 1, updated_at = $1
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, bump, doc.CreatedAt, doc.LeaveRequestID)
	if err != nil {
		return leave.LeaveDocument{}, fmt.Errorf("failed to update document count: %w", translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return leave.LeaveDocument{}, leave.ErrLeaveRequestNotFound
	}

	return doc, nil
}

// ListByRequest implements leave.LeaveDocumentRepository.
func (r *leaveDocumentRepositoryImpl) ListByRequest(ctx context.Context, leaveRequestID int64) ([]leave.LeaveDocument, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, leave_request_id, path, file_name, content_type, size, uploaded_by, created_at
		FROM leave_documents
		WHERE leave_request_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, leaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave documents: %w", translatePgError(err))
	}
	defer rows.Close()

	var docs []leave.LeaveDocument
	for rows.Next() {
		var d leave.LeaveDocument
		if err := rows.Scan(
			&d.ID,
			&d.LeaveRequestID,
			&d.Path,
			&d.FileName,
			&d.ContentType,
			&d.Size,
			&d.UploadedBy,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
