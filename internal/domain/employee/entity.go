package employee

import (
	"time"
)

type Employee struct {
	ID          string
	Email       string
	Name        string
	Designation string
	AvatarURL   *string
	Status      Status
	Balances    Balances
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// BalanceColumn names one of the three quota counters held on the employee row.
type BalanceColumn string

const (
	BalanceCasual            BalanceColumn = "casual"
	BalanceEarned            BalanceColumn = "earned"
	BalanceRestrictedHoliday BalanceColumn = "restricted_holiday"
)

func AllBalanceColumns() []BalanceColumn {
	return []BalanceColumn{BalanceCasual, BalanceEarned, BalanceRestrictedHoliday}
}

// SQLColumn returns the employees table column backing the counter.
func (c BalanceColumn) SQLColumn() (string, bool) {
	switch c {
	case BalanceCasual:
		return "casual_balance", true
	case BalanceEarned:
		return "earned_balance", true
	case BalanceRestrictedHoliday:
		return "restricted_holiday_balance", true
	}
	return "", false
}

type Balances struct {
	Casual            int `json:"casual" yaml:"casual"`
	Earned            int `json:"earned" yaml:"earned"`
	RestrictedHoliday int `json:"restricted_holiday" yaml:"restricted_holiday"`
}

// DefaultBalances are granted at onboarding unless the ledger policy overrides them.
func DefaultBalances() Balances {
	return Balances{Casual: 16, Earned: 18, RestrictedHoliday: 3}
}

func (b Balances) Get(column BalanceColumn) (int, bool) {
	switch column {
	case BalanceCasual:
		return b.Casual, true
	case BalanceEarned:
		return b.Earned, true
	case BalanceRestrictedHoliday:
		return b.RestrictedHoliday, true
	}
	return 0, false
}

func (b *Balances) Set(column BalanceColumn, value int) bool {
	switch column {
	case BalanceCasual:
		b.Casual = value
	case BalanceEarned:
		b.Earned = value
	case BalanceRestrictedHoliday:
		b.RestrictedHoliday = value
	default:
		return false
	}
	return true
}

// LedgerEntryKind classifies a journal row.
type LedgerEntryKind string

const (
	LedgerDebit      LedgerEntryKind = "debit"
	LedgerCredit     LedgerEntryKind = "credit"
	LedgerAdjustment LedgerEntryKind = "adjustment"
)

// LedgerEntry is one append-only movement on a balance column.
type LedgerEntry struct {
	ID             int64
	EmployeeID     string
	Column         BalanceColumn
	LeaveRequestID *int64
	Kind           LedgerEntryKind
	Delta          int
	BalanceAfter   int
	ActorID        string
	Note           string
	CreatedAt      time.Time
}
