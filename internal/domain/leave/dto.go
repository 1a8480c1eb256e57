package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

// Actor is the authenticated caller of a ledger operation.
type Actor struct {
	ID      string
	Name    string
	Avatar  *string
	IsAdmin bool
	Origin  Origin
}

type SubmitLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     string  `json:"reason"`
	Location   *string `json:"location,omitempty"`

	parsedType  LeaveType
	parsedStart time.Time
	parsedEnd   time.Time
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if t, ok := ParseLeaveType(r.LeaveType); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: casual, earned, restricted_holiday, sick",
		})
	} else {
		r.parsedType = t
	}

	startOK, endOK := false, false
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.parsedStart, startOK = d, true
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.parsedEnd, endOK = d, true
	}

	if startOK && endOK && r.parsedEnd.Before(r.parsedStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if r.Location != nil && len(*r.Location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Type, Start and End are populated by a successful Validate.
func (r *SubmitLeaveRequest) Type() LeaveType  { return r.parsedType }
func (r *SubmitLeaveRequest) Start() time.Time { return r.parsedStart }
func (r *SubmitLeaveRequest) End() time.Time   { return r.parsedEnd }

type RejectLeaveRequest struct {
	Remarks string `json:"remarks"`
}

func (r *RejectLeaveRequest) Validate() error {
	return validateOptionalText("remarks", r.Remarks)
}

type CancelLeaveRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r *CancelLeaveRequest) Validate() error {
	if r.Reason == nil {
		return nil
	}
	return validateOptionalText("reason", *r.Reason)
}

// RemarksOrDefault returns the caller's reason, or the stock remark when none was given.
func (r *CancelLeaveRequest) RemarksOrDefault() string {
	if r.Reason == nil || validator.IsEmpty(*r.Reason) {
		return DefaultCancelRemarks
	}
	return strings.TrimSpace(*r.Reason)
}

const DefaultCancelRemarks = "Cancelled by employee"

type ReasonRequest struct {
	Reason string `json:"reason"`
}

func (r *ReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectCancellationRequest struct {
	Remarks string `json:"remarks"`
}

func (r *RejectCancellationRequest) Validate() error {
	return validateOptionalText("remarks", r.Remarks)
}

type ListLeavesFilter struct {
	EmployeeID *string
	Status     *string
	LeaveType  *string
}

// ResolvedFilter is the typed form of ListLeavesFilter. ok is false when a filter
// value is unknown, in which case the listing is empty.
type ResolvedFilter struct {
	EmployeeID *string
	Status     *Status
	LeaveType  *LeaveType
}

func (f ListLeavesFilter) Resolve() (ResolvedFilter, bool) {
	out := ResolvedFilter{EmployeeID: f.EmployeeID}
	if f.Status != nil && *f.Status != "" {
		st, ok := ParseStatus(*f.Status)
		if !ok {
			return out, false
		}
		out.Status = &st
	}
	if f.LeaveType != nil && *f.LeaveType != "" {
		t, ok := ParseLeaveType(*f.LeaveType)
		if !ok {
			return out, false
		}
		out.LeaveType = &t
	}
	return out, true
}

type LeaveRequestResponse struct {
	ID                  int64               `json:"id"`
	EmployeeID          string              `json:"employee_id"`
	EmployeeName        *string             `json:"employee_name,omitempty"`
	LeaveType           LeaveType           `json:"leave_type"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	Days                int                 `json:"days"`
	Reason              string              `json:"reason"`
	Location            *string             `json:"location"`
	Status              Status              `json:"status"`
	CancelRequestStatus CancelRequestStatus `json:"cancel_request_status"`
	CancelReason        *string             `json:"cancel_reason"`
	Remarks             *string             `json:"remarks"`
	AppliedOn           time.Time           `json:"applied_on"`
	ApprovedDate        *time.Time          `json:"approved_date"`
	ApprovedBy          *string             `json:"approved_by"`
	RejectedDate        *time.Time          `json:"rejected_date"`
	RejectedBy          *string             `json:"rejected_by"`
	CancelledDate       *time.Time          `json:"cancelled_date"`
	CancelledBy         *string             `json:"cancelled_by"`
	DocumentRefs        []string            `json:"document_refs"`
	DocumentCount       int                 `json:"document_count"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	refs := r.DocumentRefs
	if refs == nil {
		refs = []string{}
	}
	return LeaveRequestResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		EmployeeName:        r.EmployeeName,
		LeaveType:           r.Type,
		StartDate:           r.StartDate.Format(validator.DateLayout),
		EndDate:             r.EndDate.Format(validator.DateLayout),
		Days:                r.Days,
		Reason:              r.Reason,
		Location:            r.Location,
		Status:              r.Status,
		CancelRequestStatus: r.CancelRequestStatus,
		CancelReason:        r.CancelReason,
		Remarks:             r.Remarks,
		AppliedOn:           r.AppliedOn,
		ApprovedDate:        r.ApprovedDate,
		ApprovedBy:          r.ApprovedBy,
		RejectedDate:        r.RejectedDate,
		RejectedBy:          r.RejectedBy,
		CancelledDate:       r.CancelledDate,
		CancelledBy:         r.CancelledBy,
		DocumentRefs:        refs,
		DocumentCount:       r.DocumentCount,
	}
}

type LeaveDocumentResponse struct {
	ID             string    `json:"id"`
	LeaveRequestID int64     `json:"leave_request_id"`
	Path           string    `json:"path"`
	URL            string    `json:"url"`
	FileName       string    `json:"file_name"`
	ContentType    string    `json:"content_type"`
	Size           int64     `json:"size"`
	UploadedBy     string    `json:"uploaded_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func validateOptionalText(field, value string) error {
	if len(value) > 1000 {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must not exceed 1000 characters",
		}}
	}
	return nil
}
