package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	CancelApproved(w http.ResponseWriter, r *http.Request)

	RequestCancellation(w http.ResponseWriter, r *http.Request)
	ApproveCancellation(w http.ResponseWriter, r *http.Request)
	RejectCancellation(w http.ResponseWriter, r *http.Request)

	UploadDocument(w http.ResponseWriter, r *http.Request)
	ListDocuments(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService  leave.LeaveService
	maxUploadSize int64
}

// multipart overhead allowed on top of the file itself
const multipartSlack = 1 << 20

func NewLeaveHandler(leaveService leave.LeaveService, maxUploadSize int64) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService:  leaveService,
		maxUploadSize: maxUploadSize,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req leave.SubmitLeaveRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.leaveService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", res)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	filter := leave.ListLeavesFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Status:     optionalQuery(r, "status"),
		LeaveType:  optionalQuery(r, "leave_type"),
	}

	res, err := h.leaveService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, res, &response.Meta{TotalItems: len(res)})
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	res, err := h.leaveService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	res, err := h.leaveService.Approve(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", res)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	var req leave.RejectLeaveRequest
	if err := decodeJSON(r, &req, true); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.leaveService.Reject(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", res)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	var req leave.CancelLeaveRequest
	if err := decodeJSON(r, &req, true); err != nil {
		slog.Error("Cancel decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.leaveService.Cancel(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", res)
}

// CancelApproved implements LeaveHandler.
func (h *leaveHandlerImpl) CancelApproved(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	var req leave.ReasonRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Error("CancelApproved decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.leaveService.CancelApproved(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approved leave cancelled successfully", res)
}

// RequestCancellation implements LeaveHandler.
func (h *leaveHandlerImpl) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	var req leave.ReasonRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Error("RequestCancellation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.leaveService.RequestCancellation(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cancellation requested successfully", res)
}

// ApproveCancellation implements LeaveHandler.
func (h *leaveHandlerImpl) ApproveCancellation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	res, err := h.leaveService.ApproveCancellation(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cancellation approved successfully", res)
}

// RejectCancellation implements LeaveHandler.
func (h *leaveHandlerImpl) RejectCancellation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	var req leave.RejectCancellationRequest
	if err := decodeJSON(r, &req, true); err != nil {
		slog.Error("RejectCancellation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.leaveService.RejectCancellation(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cancellation rejected successfully", res)
}

// UploadDocument implements LeaveHandler.
func (h *leaveHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartSlack)
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.RequestEntityTooLarge(w, "File exceeds maximum upload size")
			return
		}
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	res, err := h.leaveService.UploadDocument(r.Context(), actor, id, file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded successfully", res)
}

// ListDocuments implements LeaveHandler.
func (h *leaveHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := leaveID(w, r)
	if !ok {
		return
	}

	res, err := h.leaveService.ListDocuments(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}
