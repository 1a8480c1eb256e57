package memory

import (
	"context"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
)

type leaveDocumentRepository struct {
	s *Store
}

func (r *leaveDocumentRepository) Create(ctx context.Context, doc leave.LeaveDocument) (leave.LeaveDocument, error) {
	err := r.s.run(ctx, func() error {
		lr, ok := r.s.requests[doc.LeaveRequestID]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		docs := append([]leave.LeaveDocument(nil), r.s.documents[doc.LeaveRequestID]...)
		r.s.documents[doc.LeaveRequestID] = append(docs, doc)
		lr.UpdatedAt = doc.CreatedAt
		r.s.requests[lr.ID] = lr
		return nil
	})
	if err != nil {
		return leave.LeaveDocument{}, err
	}
	return doc, nil
}

func (r *leaveDocumentRepository) ListByRequest(ctx context.Context, leaveRequestID int64) ([]leave.LeaveDocument, error) {
	var docs []leave.LeaveDocument
	err := r.s.run(ctx, func() error {
		docs = append(docs, r.s.documents[leaveRequestID]...)
		return nil
	})
	return docs, err
}
