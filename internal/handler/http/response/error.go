package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
	"github.com/cmlabs-hris/leave-ledger-go/internal/service/file"
)

func kind(k string) map[string]string {
	return map[string]string{"kind": k}
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered", kind("email_exists"))
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee id already exists", kind("employee_id_exists"))
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", kind("employee_inactive"))
	case errors.Is(err, employee.ErrInvalidBalanceType):
		BadRequest(w, "Invalid balance column", kind("invalid_leave_type"))

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", kind("invalid_leave_type"))
	case errors.Is(err, leave.ErrDesignationRequired):
		BadRequest(w, "Employee has no designation on file", kind("designation_required"))
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), kind("insufficient_balance"))
	case errors.Is(err, leave.ErrWindowExpired):
		BadRequest(w, "Cancellation window has expired", kind("window_expired"))
	case errors.Is(err, leave.ErrAlreadyStarted):
		BadRequest(w, "Leave has already started", kind("already_started"))
	case errors.Is(err, leave.ErrMaxDaysExceeded):
		BadRequest(w, err.Error(), kind("max_days_exceeded"))
	case errors.Is(err, leave.ErrAlreadyApproved):
		Conflict(w, "Leave request already approved", kind("already_approved"))
	case errors.Is(err, leave.ErrAlreadyRejected):
		Conflict(w, "Leave request already rejected", kind("already_rejected"))
	case errors.Is(err, leave.ErrAlreadyCancelled):
		Conflict(w, "Leave request already cancelled", kind("already_cancelled"))
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request cannot move to that state", kind("invalid_transition"))
	case errors.Is(err, leave.ErrCancellationAlreadyPending):
		Conflict(w, "Cancellation already pending", kind("cancellation_already_pending"))
	case errors.Is(err, leave.ErrNoPendingCancellation):
		Conflict(w, "No pending cancellation request", kind("no_pending_cancellation"))
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee", kind("not_request_owner"))
	case errors.Is(err, leave.ErrAdminOnly):
		Forbidden(w, "Admin privileges required", kind("admin_only"))

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Notification belongs to another user", nil)

	// File errors
	case errors.Is(err, file.ErrInvalidFileType):
		BadRequest(w, err.Error(), kind("invalid_file_type"))
	case errors.Is(err, file.ErrFileTooLarge):
		RequestEntityTooLarge(w, "File exceeds maximum upload size")

	case errors.Is(err, database.ErrStoreConflict):
		Conflict(w, "Concurrent update, please retry", kind("store_conflict"))

	default:
		slog.Error("unhandled error", slog.String("error", err.Error()))
		InternalServerError(w, "An unexpected error occurred")
	}
}
