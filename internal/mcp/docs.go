package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `ganttcal computes project schedules from tasks, dependencies and employee calendars.

Core concepts:
- Project: a container of tasks with one calendar start date.
- Task: a unit of work with a duration in working days. Tasks can depend on other tasks (finish-to-start) and can be grouped.
- Group: a composite task holding sub-tasks; its duration is derived from the children (sequential children chain, parallel children overlap).
- Employee: a worker with a position and recurring weekly days off (ISO weekdays, 1=Monday..7=Sunday). Days off stretch a task's calendar span without changing its working-day duration.
- Run: one scheduling calculation. At most one run per project is active at a time.

Default workflow:
1) create_project with a start date, then add_employee for each worker.
2) create_task for every task and group; link order with predecessors or add_dependency.
3) calculate_schedule to compute dates, assign employees and find the critical path.
4) get_schedule to read the persisted dates back; get_run_history and get_recent_activity to inspect what happened.

Failure modes:
- A dependency cycle aborts the run (CYCLIC_DEPENDENCY) and persists nothing; remove an edge and recalculate.
- Per-task problems (bad duration, no eligible employee) do not abort: the run completes with diagnostics and those tasks are skipped or left unassigned.

Docs:
- ganttcal://docs/scheduling-model (how dates, assignments and the critical path are computed)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "ganttcal://docs/scheduling-model",
		Name:        "docs_scheduling_model",
		Title:       "Scheduling model",
		Description: "How ganttcal turns durations, dependencies and days off into calendar dates.",
		Content: `# Scheduling model

## Working days vs calendar days

A task's duration counts working days. When the assigned employee has days
off inside the task's window, the calendar span grows to fit the same number
of working days. A 3-day task started on Friday by someone who rests on
weekends ends the following Tuesday: a 5 calendar-day span.

## Dependency propagation

Every task's earliest finish is pushed forward until no dependency is
violated: a task never finishes before its own duration, and never before
any predecessor's finish plus its own duration. A dependent task starts
strictly after its last predecessor ends.

## Employee assignment

Candidates are employees whose position matches the task's required
position (an empty requirement accepts anyone). Among candidates the
scheduler picks the lowest accumulated workload, breaking ties by shortest
resulting calendar span and then lowest employee ID. A candidate that
cannot fit the task within three times its duration in calendar days is
excluded. When nobody fits, the task keeps its projected dates, stays
unassigned and the run reports a diagnostic.

## Groups

A group's duration is re-derived from its children after assignment:
sequential children chain back-to-back, parallel children overlap, and the
group covers whichever arrangement is longer. Children are then re-anchored
inside the group's date range. Groups never receive an employee.

## Critical path

A task is critical when its slack (latest start minus earliest start) is
zero. The critical path is the longest chain of critical tasks; when
several zero-slack chains exist the scheduler reports one of the longest.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
