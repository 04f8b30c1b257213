package memory

import (
	"errors"
	"sync"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
)

const (
	ResourceLogs  = "logs"
	ResourceTasks = "tasks"
)

var errInjected = errors.New("injected store failure")

// Store is an in-process record store with the same append-only shape as the
// spreadsheet API. Daily log rows are appended and collapsed on read.
type Store struct {
	mu    sync.RWMutex
	logs  []record.Row
	tasks []record.Row

	// failAfter counts down successful writes; at zero every write fails.
	failAfter int
	failing   bool
}

func NewStore() *Store {
	return &Store{failAfter: -1}
}

// Seed appends raw rows as if an earlier writer had stored them.
func (s *Store) Seed(logs []record.Row, tasks []record.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range logs {
		s.logs = append(s.logs, r.Clone())
	}
	for _, r := range tasks {
		s.tasks = append(s.tasks, r.Clone())
	}
}

// FailWritesAfter lets n more writes succeed and fails the rest.
func (s *Store) FailWritesAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfter = n
}

// SetUnavailable makes every call fail until reset.
func (s *Store) SetUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = down
}

// Writes returns the number of rows held in each table.
func (s *Store) Writes() (logs int, tasks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs), len(s.tasks)
}

func (s *Store) readable(resource string) error {
	if s.failing {
		return &record.StoreError{Resource: resource, Op: "GET", Err: errInjected}
	}
	return nil
}

// writable must be called with the write lock held.
func (s *Store) writable(resource, op string) error {
	if s.failing {
		return &record.StoreError{Resource: resource, Op: op, Err: errInjected}
	}
	if s.failAfter == 0 {
		return &record.StoreError{Resource: resource, Op: op, Err: errInjected}
	}
	if s.failAfter > 0 {
		s.failAfter--
	}
	return nil
}

func cloneRows(rows []record.Row) []record.Row {
	out := make([]record.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Clone())
	}
	return out
}
