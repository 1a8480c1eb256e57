package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestParseLeaveType(t *testing.T) {
	tests := []struct {
		in   string
		want LeaveType
		ok   bool
	}{
		{"casual", LeaveTypeCasual, true},
		{"CL", LeaveTypeCasual, true},
		{"Casual Leave", LeaveTypeCasual, true},
		{"el", LeaveTypeEarned, true},
		{"earned-leave", LeaveTypeEarned, true},
		{"RH", LeaveTypeRestrictedHoliday, true},
		{"restricted_holiday", LeaveTypeRestrictedHoliday, true},
		{"Sick", LeaveTypeSick, true},
		{"maternity", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLeaveType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLeaveType_BalanceColumn(t *testing.T) {
	col, ok := LeaveTypeCasual.BalanceColumn()
	assert.True(t, ok)
	assert.Equal(t, employee.BalanceCasual, col)

	col, ok = LeaveTypeRestrictedHoliday.BalanceColumn()
	assert.True(t, ok)
	assert.Equal(t, employee.BalanceRestrictedHoliday, col)

	_, ok = LeaveTypeSick.BalanceColumn()
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" Approved ")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, st)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestCalculateDays(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}

	assert.Equal(t, 1, CalculateDays(day("2025-03-10"), day("2025-03-10")))
	assert.Equal(t, 3, CalculateDays(day("2025-03-10"), day("2025-03-12")))
	assert.Equal(t, 3, CalculateDays(day("2024-02-28"), day("2024-03-01")))
	assert.Equal(t, 32, CalculateDays(day("2025-12-15"), day("2026-01-15")))
	// spans longer than time.Duration can hold
	assert.Equal(t, 146098, CalculateDays(day("1700-01-01"), day("2100-01-01")))

	// clock part is ignored
	start := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, CalculateDays(start, end))
}
