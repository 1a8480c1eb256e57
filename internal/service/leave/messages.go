package leave

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
)

var leaveTypeLabels = map[leave.LeaveType]string{
	leave.LeaveTypeCasual:            "Casual Leave",
	leave.LeaveTypeEarned:            "Earned Leave",
	leave.LeaveTypeRestrictedHoliday: "Restricted Holiday",
	leave.LeaveTypeSick:              "Sick Leave",
}

func typeLabel(t leave.LeaveType) string {
	if label, ok := leaveTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

func span(req leave.LeaveRequest) string {
	start := req.StartDate.Format(validator.DateLayout)
	end := req.EndDate.Format(validator.DateLayout)
	unit := "days"
	if req.Days == 1 {
		unit = "day"
	}
	if start == end {
		return fmt.Sprintf("%s (%d %s)", start, req.Days, unit)
	}
	return fmt.Sprintf("%s to %s (%d %s)", start, end, req.Days, unit)
}

func submittedMessage(employeeName string, req leave.LeaveRequest) string {
	return fmt.Sprintf("%s applied for %s from %s", employeeName, typeLabel(req.Type), span(req))
}

func approvedMessage(req leave.LeaveRequest) string {
	return fmt.Sprintf("Your %s request for %s has been approved", typeLabel(req.Type), span(req))
}

func rejectedMessage(req leave.LeaveRequest) string {
	msg := fmt.Sprintf("Your %s request for %s has been rejected", typeLabel(req.Type), span(req))
	if req.Remarks != nil {
		msg += ". Remarks: " + *req.Remarks
	}
	return msg
}

func cancelledMessage(req leave.LeaveRequest, remarks string) string {
	return fmt.Sprintf("%s request for %s has been cancelled. Remarks: %s", typeLabel(req.Type), span(req), remarks)
}

func cancellationRequestedMessage(req leave.LeaveRequest, reason string) string {
	return fmt.Sprintf("Cancellation requested for %s from %s. Reason: %s", typeLabel(req.Type), span(req), reason)
}

func cancellationApprovedMessage(req leave.LeaveRequest) string {
	return fmt.Sprintf("Your cancellation request for %s from %s has been approved", typeLabel(req.Type), span(req))
}

func cancellationRejectedMessage(req leave.LeaveRequest, remarks string) string {
	msg := fmt.Sprintf("Your cancellation request for %s from %s has been rejected", typeLabel(req.Type), span(req))
	if r := strings.TrimSpace(remarks); r != "" {
		msg += ". Remarks: " + r
	}
	return msg
}

func documentUploadedMessage(req leave.LeaveRequest, fileName string) string {
	return fmt.Sprintf("Document %q attached to %s request for %s", fileName, typeLabel(req.Type), span(req))
}
