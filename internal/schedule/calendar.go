package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/task"
)

// ProjectDates converts a task's propagated early finish into concrete
// calendar dates: the task occupies [projectStart + ef - duration,
// projectStart + ef - 1], end inclusive.
func ProjectDates(projectStart time.Time, earlyFinish, duration float64) (start, end time.Time) {
	startOffset := int(math.Round(earlyFinish - duration))
	endOffset := int(math.Round(earlyFinish)) - 1
	return projectStart.AddDate(0, 0, startOffset), projectStart.AddDate(0, 0, endOffset)
}

// SpanDays returns the inclusive calendar-day span of a date range.
func SpanDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// DeriveGroupDuration recomputes a group's nominal duration from its
// children's calendar-expanded spans: parallel children overlap (max),
// sequential children chain (sum). With both kinds present the group must
// cover whichever is longer.
func DeriveGroupDuration(children []task.Task, spans map[int64]int) int {
	parallelMax, sequentialSum := 0, 0
	hasParallel, hasSequential := false, false

	for i := range children {
		span := spans[children[i].ID]
		if span <= 0 {
			span = children[i].Duration
		}
		if children[i].Parallel {
			hasParallel = true
			if span > parallelMax {
				parallelMax = span
			}
		} else {
			hasSequential = true
			sequentialSum += span
		}
	}

	switch {
	case hasParallel && hasSequential:
		if sequentialSum > parallelMax {
			return sequentialSum
		}
		return parallelMax
	case hasSequential:
		return sequentialSum
	case hasParallel:
		return parallelMax
	default:
		return 0
	}
}

// FitChildrenToGroup re-anchors child date ranges inside the group's range:
// parallel children all start at the group start with ends capped at the
// group end; sequential children chain back-to-back from the group start,
// each capped at the group end. Children are visited in ID order.
func FitChildrenToGroup(groupStart, groupEnd time.Time, children []task.Task, schedules map[int64]*TaskSchedule) {
	ordered := make([]task.Task, len(children))
	copy(ordered, children)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	cursor := groupStart
	for i := range ordered {
		sched := schedules[ordered[i].ID]
		if sched == nil {
			continue
		}
		span := sched.CalendarDays
		if span <= 0 {
			span = ordered[i].Duration
		}

		if ordered[i].Parallel {
			sched.StartDate = groupStart
			sched.EndDate = groupStart.AddDate(0, 0, span-1)
			if sched.EndDate.After(groupEnd) {
				sched.EndDate = groupEnd
			}
		} else {
			if cursor.After(groupEnd) {
				cursor = groupEnd
			}
			sched.StartDate = cursor
			sched.EndDate = cursor.AddDate(0, 0, span-1)
			if sched.EndDate.After(groupEnd) {
				sched.EndDate = groupEnd
			}
			cursor = sched.EndDate.AddDate(0, 0, 1)
		}
		sched.CalendarDays = SpanDays(sched.StartDate, sched.EndDate)
	}
}
