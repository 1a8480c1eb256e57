package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	// GetByIDForUpdate locks the request row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (LeaveRequest, error)
	// List returns one row per attached document; callers deduplicate.
	List(ctx context.Context, filter ResolvedFilter) ([]LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
}

// LeaveDocumentRepository - interface for leave_documents table
type LeaveDocumentRepository interface {
	Create(ctx context.Context, doc LeaveDocument) (LeaveDocument, error)
	ListByRequest(ctx context.Context, leaveRequestID int64) ([]LeaveDocument, error)
}
