package schedule

import "math"

// slackTolerance is the floating tolerance below which a task counts as
// critical.
const slackTolerance = 1e-3

// Times holds the propagated timing values for every task, in abstract
// duration units.
type Times struct {
	EarlyFinish   map[int64]float64
	LateStart     map[int64]float64
	Slack         map[int64]float64
	DurationUnits float64 // project duration, max early finish
}

// IsCritical reports whether a task has (near) zero slack.
func (t *Times) IsCritical(id int64) bool {
	return math.Abs(t.Slack[id]) < slackTolerance
}

// Propagate computes early-finish, late-start and slack for every graph
// node via relaxation. The graph is not topologically sorted, so both
// passes sweep all nodes repeatedly until a fixpoint, bounded by
// 2 x node count sweeps so unsatisfiable inputs still terminate.
func Propagate(g *Graph, durations map[int64]float64) *Times {
	t := &Times{
		EarlyFinish: make(map[int64]float64, len(g.Nodes)),
		LateStart:   make(map[int64]float64, len(g.Nodes)),
		Slack:       make(map[int64]float64, len(g.Nodes)),
	}

	maxSweeps := 2 * len(g.Nodes)

	// Forward pass: a task finishes no earlier than its own duration, and
	// no earlier than any predecessor's early finish plus its own duration.
	for _, id := range g.Nodes {
		t.EarlyFinish[id] = 0
	}
	for sweep := 0; sweep < maxSweeps; sweep++ {
		changed := false
		for _, id := range g.Nodes {
			ef := t.EarlyFinish[id]
			candidate := durations[id]
			for _, pred := range g.Preds[id] {
				if v := t.EarlyFinish[pred] + durations[id]; v > candidate {
					candidate = v
				}
			}
			if candidate > ef {
				t.EarlyFinish[id] = candidate
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, id := range g.Nodes {
		if ef := t.EarlyFinish[id]; ef > t.DurationUnits {
			t.DurationUnits = ef
		}
	}

	// Backward pass: sinks start as late as their early finish allows,
	// everything else as late as its earliest successor start allows.
	for _, id := range g.Nodes {
		t.LateStart[id] = t.DurationUnits
	}
	for sweep := 0; sweep < maxSweeps; sweep++ {
		changed := false
		for _, id := range g.Nodes {
			var candidate float64
			if len(g.Succs[id]) == 0 {
				candidate = t.EarlyFinish[id] - durations[id]
			} else {
				min := math.Inf(1)
				for _, succ := range g.Succs[id] {
					if ls := t.LateStart[succ]; ls < min {
						min = ls
					}
				}
				candidate = min - durations[id]
			}
			if candidate != t.LateStart[id] {
				t.LateStart[id] = candidate
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, id := range g.Nodes {
		t.Slack[id] = t.LateStart[id] - (t.EarlyFinish[id] - durations[id])
	}

	return t
}

// CriticalPath walks the zero-slack tasks and returns the longest chain
// found. Start candidates are critical tasks with no critical predecessor;
// from each, the walk greedily follows the first (lowest-ID) critical
// successor. An empty result means no critical tasks exist and callers
// report the longest-duration tasks as a diagnostic instead.
func CriticalPath(g *Graph, times *Times) []int64 {
	var starts []int64
	for _, id := range g.Nodes {
		if !times.IsCritical(id) {
			continue
		}
		hasCriticalPred := false
		for _, pred := range g.Preds[id] {
			if times.IsCritical(pred) {
				hasCriticalPred = true
				break
			}
		}
		if !hasCriticalPred {
			starts = append(starts, id)
		}
	}

	var best []int64
	for _, start := range starts {
		path := []int64{start}
		cur := start
		for {
			var next int64
			found := false
			for _, succ := range g.Succs[cur] {
				if times.IsCritical(succ) {
					next = succ
					found = true
					break
				}
			}
			if !found {
				break
			}
			path = append(path, next)
			cur = next
		}
		if len(path) > len(best) {
			best = path
		}
	}

	return best
}
