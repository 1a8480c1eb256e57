package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
)

type LeaveType string

const (
	LeaveTypeCasual            LeaveType = "casual"
	LeaveTypeEarned            LeaveType = "earned"
	LeaveTypeRestrictedHoliday LeaveType = "restricted_holiday"
	LeaveTypeSick              LeaveType = "sick"
)

var leaveTypeAliases = map[string]LeaveType{
	"cl":                LeaveTypeCasual,
	"casual":            LeaveTypeCasual,
	"casualleave":       LeaveTypeCasual,
	"el":                LeaveTypeEarned,
	"earned":            LeaveTypeEarned,
	"earnedleave":       LeaveTypeEarned,
	"rh":                LeaveTypeRestrictedHoliday,
	"restrictedholiday": LeaveTypeRestrictedHoliday,
	"sl":                LeaveTypeSick,
	"sick":              LeaveTypeSick,
	"sickleave":         LeaveTypeSick,
}

// ParseLeaveType accepts the canonical names plus the CL/EL/RH/SL short codes,
// ignoring case, spaces, hyphens and underscores.
func ParseLeaveType(s string) (LeaveType, bool) {
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	t, ok := leaveTypeAliases[key]
	return t, ok
}

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeCasual, LeaveTypeEarned, LeaveTypeRestrictedHoliday, LeaveTypeSick:
		return true
	}
	return false
}

// BalanceColumn maps the type to the employee counter it debits.
// Sick leave is tracked but has no counter, so ok is false for it.
func (t LeaveType) BalanceColumn() (employee.BalanceColumn, bool) {
	switch t {
	case LeaveTypeCasual:
		return employee.BalanceCasual, true
	case LeaveTypeEarned:
		return employee.BalanceEarned, true
	case LeaveTypeRestrictedHoliday:
		return employee.BalanceRestrictedHoliday, true
	}
	return "", false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return st, true
	}
	return "", false
}

type CancelRequestStatus string

const (
	CancelRequestNone     CancelRequestStatus = "none"
	CancelRequestPending  CancelRequestStatus = "pending"
	CancelRequestApproved CancelRequestStatus = "approved"
	CancelRequestRejected CancelRequestStatus = "rejected"
)

type LeaveRequest struct {
	ID         int64
	EmployeeID string
	Type       LeaveType

	StartDate time.Time
	EndDate   time.Time
	Days      int

	Reason   string
	Location *string

	Status              Status
	CancelRequestStatus CancelRequestStatus
	CancelReason        *string
	Remarks             *string

	AppliedOn     time.Time
	ApprovedDate  *time.Time
	ApprovedBy    *string
	RejectedDate  *time.Time
	RejectedBy    *string
	CancelledDate *time.Time
	CancelledBy   *string

	DocumentRefs  []string
	DocumentCount int

	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

type LeaveDocument struct {
	ID             string
	LeaveRequestID int64
	Path           string
	FileName       string
	ContentType    string
	Size           int64
	UploadedBy     string
	CreatedAt      time.Time
}

// DateOnly drops the clock part of t, keeping its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculateDays returns the inclusive number of calendar days between start and end.
func CalculateDays(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	return int((e.Unix()-s.Unix())/86400) + 1
}
