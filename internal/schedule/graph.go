package schedule

import (
	"fmt"
	"sort"

	"github.com/rkulagin/ganttcal/internal/domain/task"
)

// Graph is the dependency graph of a project: task -> predecessors and the
// implicit reverse adjacency task -> successors.
type Graph struct {
	Nodes []int64            // sorted task IDs
	Preds map[int64][]int64  // task -> tasks it waits for
	Succs map[int64][]int64  // task -> tasks waiting for it
}

// BuildGraph merges each task's inline predecessor list with explicit
// dependency-edge records into one adjacency structure. Predecessor
// references to tasks outside the set are dropped silently (referential
// integrity is an ingestion guarantee, but a dangling reference must never
// crash a run). Self references are dropped with a diagnostic.
func BuildGraph(tasks []task.Task, edges []task.DependencyEdge) (*Graph, []Diagnostic) {
	g := &Graph{
		Preds: make(map[int64][]int64, len(tasks)),
		Succs: make(map[int64][]int64, len(tasks)),
	}

	known := make(map[int64]bool, len(tasks))
	for i := range tasks {
		known[tasks[i].ID] = true
		g.Nodes = append(g.Nodes, tasks[i].ID)
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i] < g.Nodes[j] })

	var diags []Diagnostic
	edgeSet := make(map[[2]int64]bool)
	addEdge := func(taskID, predID int64) {
		if predID == taskID {
			diags = append(diags, Diagnostic{
				Code:    DiagInvalidPredecessor,
				TaskID:  taskID,
				Message: fmt.Sprintf("task %d lists itself as predecessor; reference dropped", taskID),
			})
			return
		}
		if !known[predID] {
			return
		}
		key := [2]int64{taskID, predID}
		if edgeSet[key] {
			return
		}
		edgeSet[key] = true
		g.Preds[taskID] = append(g.Preds[taskID], predID)
		g.Succs[predID] = append(g.Succs[predID], taskID)
	}

	for i := range tasks {
		for _, predID := range tasks[i].Predecessors {
			addEdge(tasks[i].ID, predID)
		}
	}
	for _, edge := range edges {
		if !known[edge.TaskID] {
			continue
		}
		addEdge(edge.TaskID, edge.PredecessorID)
	}

	// Sort adjacency lists for deterministic ordering
	for id := range g.Preds {
		sort.Slice(g.Preds[id], func(i, j int) bool { return g.Preds[id][i] < g.Preds[id][j] })
	}
	for id := range g.Succs {
		sort.Slice(g.Succs[id], func(i, j int) bool { return g.Succs[id][i] < g.Succs[id][j] })
	}

	return g, diags
}

// DetectCycle returns the members of a dependency cycle if one exists, or
// nil for an acyclic graph. Coloring DFS over successors with an explicit
// stack, so arbitrarily deep graphs cannot exhaust the call stack.
func (g *Graph) DetectCycle() []int64 {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[int64]int, len(g.Nodes))
	parent := make(map[int64]int64, len(g.Nodes))

	type frame struct {
		node int64
		next int // index into g.Succs[node]
	}

	for _, root := range g.Nodes {
		if color[root] != white {
			continue
		}

		stack := []frame{{node: root}}
		color[root] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := g.Succs[top.node]

			if top.next >= len(succs) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := succs[top.next]
			top.next++

			switch color[next] {
			case gray:
				// Reconstruct the cycle in forward order.
				cycle := []int64{next}
				for cur := top.node; cur != next; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				for i, j := 1, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			case white:
				parent[next] = top.node
				color[next] = gray
				stack = append(stack, frame{node: next})
			}
		}
	}

	return nil
}
