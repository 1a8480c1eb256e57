package leave

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/google/uuid"
)

// UploadDocument implements leave.LeaveService. The blob is written first; if
// the metadata transaction fails the blob is removed again.
func (s *LeaveServiceImpl) UploadDocument(ctx context.Context, actor leave.Actor, id int64, file io.Reader, filename string, size int64) (leave.LeaveDocumentResponse, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveDocumentResponse{}, err
	}
	if !actor.IsAdmin && req.EmployeeID != actor.ID {
		return leave.LeaveDocumentResponse{}, leave.ErrNotRequestOwner
	}

	stored, err := s.fileService.UploadLeaveDocument(ctx, req.EmployeeID, req.ID, file, filename)
	if err != nil {
		return leave.LeaveDocumentResponse{}, err
	}
	if size <= 0 {
		size = stored.Size
	}

	doc := leave.LeaveDocument{
		ID:             uuid.New().String(),
		LeaveRequestID: req.ID,
		Path:           stored.Path,
		FileName:       filepath.Base(filename),
		ContentType:    stored.ContentType,
		Size:           size,
		UploadedBy:     actor.ID,
		CreatedAt:      s.now(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.requests.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc, err = s.documents.Create(ctx, doc); err != nil {
			return err
		}

		message := documentUploadedMessage(locked, doc.FileName)
		notice := s.ownerNotice(actor, locked, notification.TypeLeaveDocumentUploaded, message)
		if locked.EmployeeID != actor.ID {
			notice = s.adminNotice(actor, locked, notification.TypeLeaveDocumentUploaded, message)
		}
		return s.notify(ctx, notice)
	})
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, stored.Path); delErr != nil {
			slog.ErrorContext(ctx, "Failed to remove orphaned leave document", "path", stored.Path, "error", delErr)
		}
		return leave.LeaveDocumentResponse{}, err
	}

	slog.InfoContext(ctx, "Leave document uploaded", "leave_request_id", id, "document_id", doc.ID, "actor_id", actor.ID)
	return s.documentResponse(ctx, doc), nil
}

// ListDocuments implements leave.LeaveService. Oldest upload first.
func (s *LeaveServiceImpl) ListDocuments(ctx context.Context, actor leave.Actor, id int64) ([]leave.LeaveDocumentResponse, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && req.EmployeeID != actor.ID {
		return nil, leave.ErrNotRequestOwner
	}

	docs, err := s.documents.ListByRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]leave.LeaveDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, s.documentResponse(ctx, doc))
	}
	return out, nil
}

func (s *LeaveServiceImpl) documentResponse(ctx context.Context, doc leave.LeaveDocument) leave.LeaveDocumentResponse {
	url, err := s.fileService.GetFileURL(ctx, doc.Path, 0)
	if err != nil {
		slog.WarnContext(ctx, "Failed to build leave document URL", "path", doc.Path, "error", err)
	}

	return leave.LeaveDocumentResponse{
		ID:             doc.ID,
		LeaveRequestID: doc.LeaveRequestID,
		Path:           doc.Path,
		URL:            url,
		FileName:       doc.FileName,
		ContentType:    doc.ContentType,
		Size:           doc.Size,
		UploadedBy:     doc.UploadedBy,
		CreatedAt:      doc.CreatedAt,
	}
}
