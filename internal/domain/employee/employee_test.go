package employee

import (
	"testing"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBalances_GetSet(t *testing.T) {
	b := DefaultBalances()
	assert.Equal(t, Balances{Casual: 16, Earned: 18, RestrictedHoliday: 3}, b)

	for _, col := range AllBalanceColumns() {
		require.True(t, b.Set(col, -2))
		v, ok := b.Get(col)
		require.True(t, ok)
		assert.Equal(t, -2, v)
	}

	assert.False(t, b.Set(BalanceColumn("sick"), 1))
	_, ok := b.Get(BalanceColumn("sick"))
	assert.False(t, ok)
}

func TestBalanceColumn_SQLColumn(t *testing.T) {
	col, ok := BalanceEarned.SQLColumn()
	assert.True(t, ok)
	assert.Equal(t, "earned_balance", col)

	_, ok = BalanceColumn("earned_balance; DROP TABLE employees").SQLColumn()
	assert.False(t, ok)
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	valid := CreateEmployeeRequest{
		ID:          "E-100",
		Email:       "asha@example.com",
		Name:        "Asha Rao",
		Designation: "Engineer",
	}
	assert.NoError(t, valid.Validate())

	invalid := CreateEmployeeRequest{
		ID:        "has space",
		Email:     "not-an-email",
		AvatarURL: ptr("ftp://example.com/a.png"),
		Balances:  &Balances{Casual: -1},
	}
	err := invalid.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "avatar_url")
}

func TestUpdateEmployeeRequest(t *testing.T) {
	assert.Error(t, (&UpdateEmployeeRequest{}).Validate())
	assert.Error(t, (&UpdateEmployeeRequest{Status: ptr(Status("retired"))}).Validate())
	assert.Error(t, (&UpdateEmployeeRequest{Name: ptr("  ")}).Validate())

	e := Employee{
		Email:       "old@example.com",
		Name:        "Old",
		Designation: "Analyst",
		AvatarURL:   ptr("https://cdn.example.com/a.png"),
		Status:      StatusActive,
	}
	req := UpdateEmployeeRequest{Designation: ptr(" Lead "), AvatarURL: ptr("")}
	require.NoError(t, req.Validate())
	req.Apply(&e)

	assert.Equal(t, "old@example.com", e.Email)
	assert.Equal(t, "Old", e.Name)
	assert.Equal(t, "Lead", e.Designation)
	assert.Nil(t, e.AvatarURL)
	assert.Equal(t, StatusActive, e.Status)
}

func TestAdjustBalancesRequest(t *testing.T) {
	assert.Error(t, (&AdjustBalancesRequest{Note: "nothing"}).Validate())

	req := AdjustBalancesRequest{RestrictedHoliday: ptr(-1), Casual: ptr(20)}
	require.NoError(t, req.Validate())
	assert.Equal(t, []BalanceTarget{
		{Column: BalanceCasual, Value: 20},
		{Column: BalanceRestrictedHoliday, Value: -1},
	}, req.Targets())
}

func TestLedgerFilter_Validate(t *testing.T) {
	assert.NoError(t, (&LedgerFilter{}).Validate())
	assert.NoError(t, (&LedgerFilter{LeaveType: ptr("earned"), Limit: 10}).Validate())
	assert.Error(t, (&LedgerFilter{LeaveType: ptr("sick")}).Validate())
	assert.Error(t, (&LedgerFilter{Limit: 501}).Validate())
}
