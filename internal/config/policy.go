package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"gopkg.in/yaml.v3"
)

// PolicyFile is the YAML shape of LEDGER_POLICY_FILE:
//
//	default_balances:
//	  casual: 16
//	  earned: 18
//	  restricted_holiday: 3
//	cancel_window: 12h
//	notification_feed_limit: 50
//	max_days_per_request: 0
type PolicyFile struct {
	DefaultBalances       employee.Balances `yaml:"default_balances"`
	CancelWindow          time.Duration     `yaml:"-"`
	CancelWindowRaw       string            `yaml:"cancel_window"`
	NotificationFeedLimit int               `yaml:"notification_feed_limit"`
	MaxDaysPerRequest     int               `yaml:"max_days_per_request"`
}

func DefaultPolicyFile() PolicyFile {
	p := leave.DefaultPolicy()
	return PolicyFile{
		DefaultBalances:       p.DefaultBalances,
		CancelWindow:          p.CancelWindow,
		CancelWindowRaw:       p.CancelWindow.String(),
		NotificationFeedLimit: p.NotificationFeedLimit,
		MaxDaysPerRequest:     p.MaxDaysPerRequest,
	}
}

// LoadPolicyFile reads path over the defaults, so omitted keys keep their default.
func LoadPolicyFile(path string) (PolicyFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return PolicyFile{}, fmt.Errorf("config: read policy file %s: %w", path, err)
	}

	p := DefaultPolicyFile()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return PolicyFile{}, fmt.Errorf("config: parse policy yaml: %w", err)
	}

	window, err := time.ParseDuration(p.CancelWindowRaw)
	if err != nil {
		return PolicyFile{}, fmt.Errorf("config: cancel_window: %w", err)
	}
	p.CancelWindow = window

	if err := p.Validate(); err != nil {
		return PolicyFile{}, err
	}
	return p, nil
}

func (p PolicyFile) Validate() error {
	for _, column := range employee.AllBalanceColumns() {
		if v, _ := p.DefaultBalances.Get(column); v < 0 {
			return fmt.Errorf("config: default_balances.%s must not be negative", column)
		}
	}
	if p.CancelWindow <= 0 {
		return fmt.Errorf("config: cancel_window must be positive")
	}
	if p.NotificationFeedLimit < 1 {
		return fmt.Errorf("config: notification_feed_limit must be at least 1")
	}
	if p.MaxDaysPerRequest < 0 {
		return fmt.Errorf("config: max_days_per_request must not be negative")
	}
	return nil
}

// LeavePolicy converts the file into the ledger's runtime policy.
func (p PolicyFile) LeavePolicy() leave.Policy {
	return leave.Policy{
		DefaultBalances:       p.DefaultBalances,
		CancelWindow:          p.CancelWindow,
		NotificationFeedLimit: p.NotificationFeedLimit,
		MaxDaysPerRequest:     p.MaxDaysPerRequest,
	}
}
