package leave

import (
	"context"
	"io"
)

type LeaveService interface {
	Submit(ctx context.Context, actor Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	List(ctx context.Context, actor Actor, filter ListLeavesFilter) ([]LeaveRequestResponse, error)
	Get(ctx context.Context, actor Actor, id int64) (LeaveRequestResponse, error)

	Approve(ctx context.Context, actor Actor, id int64) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor Actor, id int64, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actor Actor, id int64, req CancelLeaveRequest) (LeaveRequestResponse, error)
	CancelApproved(ctx context.Context, actor Actor, id int64, req ReasonRequest) (LeaveRequestResponse, error)

	// Two-step cancellation
	RequestCancellation(ctx context.Context, actor Actor, id int64, req ReasonRequest) (LeaveRequestResponse, error)
	ApproveCancellation(ctx context.Context, actor Actor, id int64) (LeaveRequestResponse, error)
	RejectCancellation(ctx context.Context, actor Actor, id int64, req RejectCancellationRequest) (LeaveRequestResponse, error)

	UploadDocument(ctx context.Context, actor Actor, id int64, file io.Reader, filename string, size int64) (LeaveDocumentResponse, error)
	ListDocuments(ctx context.Context, actor Actor, id int64) ([]LeaveDocumentResponse, error)
}
