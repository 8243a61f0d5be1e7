package attendance

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/cache"
)

// MonthViewKey identifies one cached month view.
type MonthViewKey struct {
	EmployeeID string
	StartDate  attendance.CalendarDay
	EndDate    attendance.CalendarDay
}

func (k MonthViewKey) String() string {
	return k.EmployeeID + "|" + string(k.StartDate) + "|" + string(k.EndDate)
}

// MonthViewStore caches month views and tracks per-employee invalidations.
//
// epochs counts invalidations per employee so a load that started before an
// invalidation cannot repopulate the cache with the old month. An epoch is
// only needed while a load for that employee is running, so Prune forgets
// epochs of employees with nothing in flight.
type MonthViewStore struct {
	views *cache.Cache[MonthViewKey, attendance.MonthViewResponse]

	mu      sync.Mutex
	epochs  map[string]uint64
	loading map[string]int
}

// NewMonthViewStore creates a store whose views live for ttl. A ttl <= 0
// disables caching; invalidation tracking still applies.
func NewMonthViewStore(ttl time.Duration) *MonthViewStore {
	return &MonthViewStore{
		views:   cache.New[MonthViewKey, attendance.MonthViewResponse](ttl),
		epochs:  make(map[string]uint64),
		loading: make(map[string]int),
	}
}

func (s *MonthViewStore) Get(key MonthViewKey) (attendance.MonthViewResponse, bool) {
	return s.views.Get(key)
}

// begin registers a load for employeeID and returns the epoch it runs under.
// Every begin must be paired with end.
func (s *MonthViewStore) begin(employeeID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading[employeeID]++
	return s.epochs[employeeID]
}

func (s *MonthViewStore) end(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading[employeeID] <= 1 {
		delete(s.loading, employeeID)
		return
	}
	s.loading[employeeID]--
}

// store caches view unless the employee was invalidated since epoch.
func (s *MonthViewStore) store(key MonthViewKey, epoch uint64, view attendance.MonthViewResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[key.EmployeeID] != epoch {
		return false
	}
	s.views.Set(key, view)
	return true
}

// Invalidate drops every cached month of employeeID and returns how many went.
func (s *MonthViewStore) Invalidate(employeeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epochs[employeeID]++
	return s.views.DeleteFunc(func(k MonthViewKey) bool {
		return k.EmployeeID == employeeID
	})
}

// Prune drops expired views and idle epochs. It returns the number of views removed.
func (s *MonthViewStore) Prune() int {
	removed := s.views.Prune()

	s.mu.Lock()
	defer s.mu.Unlock()

	forgotten := 0
	for employeeID := range s.epochs {
		if s.loading[employeeID] == 0 {
			delete(s.epochs, employeeID)
			forgotten++
		}
	}
	if forgotten > 0 {
		slog.Debug("Forgot idle month view epochs", "count", forgotten)
	}
	return removed
}

// Len counts cached views, expired ones included until pruned.
func (s *MonthViewStore) Len() int {
	return s.views.Len()
}

func (s *MonthViewStore) trackedEpochs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.epochs)
}
