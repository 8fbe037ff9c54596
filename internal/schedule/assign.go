package schedule

import (
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/task"
)

// horizonFactor bounds the placement probe: an employee who cannot fit a
// task's working days within factor x duration calendar days is excluded.
const horizonFactor = 3

// Placement is a successful employee assignment for one task.
type Placement struct {
	EmployeeID   int64
	Start        time.Time
	End          time.Time // inclusive
	CalendarDays int
}

// Assigner tracks per-employee workload across one scheduling run. Each run
// holds a fresh accumulator; only persisted assignments seed it.
type Assigner struct {
	workload map[int64]int // employee ID -> accumulated calendar days
}

// NewAssigner creates an empty workload accumulator.
func NewAssigner() *Assigner {
	return &Assigner{workload: make(map[int64]int)}
}

// Seed records pre-existing workload for an employee.
func (a *Assigner) Seed(employeeID int64, calendarDays int) {
	a.workload[employeeID] += calendarDays
}

// Release removes seeded workload for an employee. Called before a task
// whose persisted span was seeded is placed again, so the span is not
// counted twice.
func (a *Assigner) Release(employeeID int64, calendarDays int) {
	a.workload[employeeID] -= calendarDays
}

// Workload returns the accumulated calendar days for an employee.
func (a *Assigner) Workload(employeeID int64) int {
	return a.workload[employeeID]
}

// Eligible filters employees by the task's required position. A task
// without a position requirement accepts any employee.
func Eligible(t *task.Task, employees []employee.Employee) []employee.Employee {
	if t.Position == "" {
		return employees
	}
	var out []employee.Employee
	for i := range employees {
		if employees[i].Position == t.Position {
			out = append(out, employees[i])
		}
	}
	return out
}

// Place tries to assign the task to the best candidate starting no earlier
// than earliestStart. Selection policy, applied uniformly: lowest
// accumulated workload, then shortest resulting calendar span, then lowest
// employee ID. On success the winner's workload grows by the span consumed.
// The boolean is false when no candidate fits within the probe horizon.
func (a *Assigner) Place(t *task.Task, earliestStart time.Time, candidates []employee.Employee) (*Placement, bool) {
	var best *Placement
	bestLoad := 0

	for i := range candidates {
		emp := &candidates[i]
		start, end, span, ok := probe(emp, earliestStart, t.Duration)
		if !ok {
			// Candidate cannot finish within the horizon; excluded.
			continue
		}
		load := a.workload[emp.ID]
		if best == nil ||
			load < bestLoad ||
			(load == bestLoad && span < best.CalendarDays) ||
			(load == bestLoad && span == best.CalendarDays && emp.ID < best.EmployeeID) {
			best = &Placement{EmployeeID: emp.ID, Start: start, End: end, CalendarDays: span}
			bestLoad = load
		}
	}

	if best == nil {
		return nil, false
	}
	a.workload[best.EmployeeID] += best.CalendarDays
	return best, true
}

// probe advances day by day from earliestStart, counting only days the
// employee works, until duration working days are accumulated. The start
// slips to the employee's first working day, so the placed start may be
// later than requested.
func probe(emp *employee.Employee, earliestStart time.Time, duration int) (start, end time.Time, span int, ok bool) {
	if duration <= 0 {
		return time.Time{}, time.Time{}, 0, false
	}

	horizon := duration * horizonFactor
	working := 0
	started := false

	for day := 0; day < horizon; day++ {
		date := earliestStart.AddDate(0, 0, day)
		if !emp.IsAvailable(date) {
			continue
		}
		if !started {
			start = date
			started = true
		}
		working++
		if working == duration {
			end = date
			return start, end, SpanDays(start, end), true
		}
	}

	return time.Time{}, time.Time{}, 0, false
}

// FallbackDates returns the dates a task receives when no employee fits:
// the nominal duration laid out from the earliest start, unassigned.
func FallbackDates(earliestStart time.Time, duration int) (time.Time, time.Time) {
	return earliestStart, earliestStart.AddDate(0, 0, duration-1)
}
