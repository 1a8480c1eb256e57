// Package memory is an in-process store for development and tests. It holds
// every table in maps guarded by one mutex; a transaction owns the mutex for
// its whole duration and restores a snapshot when it fails.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
)

type txKey struct{}

type Store struct {
	mu sync.Mutex

	employees     map[string]employee.Employee
	requests      map[int64]leave.LeaveRequest
	documents     map[int64][]leave.LeaveDocument
	ledger        []employee.LedgerEntry
	notifications []notification.Notification

	nextRequestID int64
	nextLedgerID  int64
}

func NewStore() *Store {
	return &Store{
		employees: make(map[string]employee.Employee),
		requests:  make(map[int64]leave.LeaveRequest),
		documents: make(map[int64][]leave.LeaveDocument),
	}
}

type snapshot struct {
	employees     map[string]employee.Employee
	requests      map[int64]leave.LeaveRequest
	documents     map[int64][]leave.LeaveDocument
	ledger        []employee.LedgerEntry
	notifications []notification.Notification
	nextRequestID int64
	nextLedgerID  int64
}

// Stored values are replaced, never mutated in place, so cloning the
// containers is enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		employees:     maps.Clone(s.employees),
		requests:      maps.Clone(s.requests),
		documents:     maps.Clone(s.documents),
		ledger:        append([]employee.LedgerEntry(nil), s.ledger...),
		notifications: append([]notification.Notification(nil), s.notifications...),
		nextRequestID: s.nextRequestID,
		nextLedgerID:  s.nextLedgerID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.employees = snap.employees
	s.requests = snap.requests
	s.documents = snap.documents
	s.ledger = snap.ledger
	s.notifications = snap.notifications
	s.nextRequestID = snap.nextRequestID
	s.nextLedgerID = snap.nextLedgerID
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*Store)
	return ok
}

// run executes fn holding the store lock unless ctx already carries a transaction.
func (s *Store) run(ctx context.Context, fn func() error) error {
	if inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (s *Store) Ledger() employee.LedgerRepository {
	return &ledgerRepository{s: s}
}

func (s *Store) LeaveRequests() leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

func (s *Store) LeaveDocuments() leave.LeaveDocumentRepository {
	return &leaveDocumentRepository{s: s}
}

func (s *Store) Notifications() notification.Repository {
	return &notificationRepository{s: s}
}
