// Package seed loads an initial roster and project plan from a YAML file.
// Applying a seed is idempotent: employees are matched by name and a
// project is only created when no project with that name exists yet.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/repository"
	"gopkg.in/yaml.v3"
)

// File is the root of a seed document.
type File struct {
	Employees []EmployeeSeed `yaml:"employees"`
	Projects  []ProjectSeed  `yaml:"projects"`
}

// EmployeeSeed declares one employee.
type EmployeeSeed struct {
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	DaysOff  []int  `yaml:"days_off"`
}

// ProjectSeed declares one project with its task plan.
type ProjectSeed struct {
	Name      string     `yaml:"name"`
	StartDate string     `yaml:"start_date"`
	Tasks     []TaskSeed `yaml:"tasks"`
}

// TaskSeed declares one task. Refs are file-local keys used to wire parent
// and ordering relations before database IDs exist; a parent must be
// declared before its children.
type TaskSeed struct {
	Ref      string   `yaml:"ref"`
	Name     string   `yaml:"name"`
	Duration int      `yaml:"duration"`
	Group    bool     `yaml:"group"`
	Parallel bool     `yaml:"parallel"`
	Parent   string   `yaml:"parent"`
	After    []string `yaml:"after"`
	Position string   `yaml:"position"`
}

// ProjectService defines project operations needed by the loader.
type ProjectService interface {
	Create(ctx context.Context, tenantID string, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error)
}

// EmployeeService defines employee operations needed by the loader.
type EmployeeService interface {
	Create(ctx context.Context, tenantID string, req employee.CreateRequest) (*employee.Employee, error)
}

// TaskService defines task operations needed by the loader.
type TaskService interface {
	Create(ctx context.Context, tenantID string, req task.CreateRequest) (*task.Task, error)
	AddDependency(ctx context.Context, tenantID string, edge task.DependencyEdge) error
}

// Loader applies seed files through the domain services.
type Loader struct {
	projects  ProjectService
	employees EmployeeService
	tasks     TaskService
	logger    *slog.Logger
}

// NewLoader creates a seed loader.
func NewLoader(projects ProjectService, employees EmployeeService, tasks TaskService, logger *slog.Logger) *Loader {
	return &Loader{projects: projects, employees: employees, tasks: tasks, logger: logger}
}

// Parse reads and validates a seed document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for pi := range f.Projects {
		seen := make(map[string]bool)
		for ti := range f.Projects[pi].Tasks {
			t := &f.Projects[pi].Tasks[ti]
			if t.Ref != "" {
				if seen[t.Ref] {
					return nil, fmt.Errorf("project %q: duplicate task ref %q", f.Projects[pi].Name, t.Ref)
				}
				seen[t.Ref] = true
			}
			if t.Parent != "" && !seen[t.Parent] {
				return nil, fmt.Errorf("project %q: task %q declared before its parent %q", f.Projects[pi].Name, t.Name, t.Parent)
			}
		}
	}
	return &f, nil
}

// ApplyPath loads a seed file from disk and applies it.
func (l *Loader) ApplyPath(ctx context.Context, tenantID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return err
	}
	return l.Apply(ctx, tenantID, f)
}

// Apply creates the seeded employees and projects that do not exist yet.
func (l *Loader) Apply(ctx context.Context, tenantID string, f *File) error {
	for _, emp := range f.Employees {
		_, err := l.employees.Create(ctx, tenantID, employee.CreateRequest{
			Name:     emp.Name,
			Position: emp.Position,
			DaysOff:  emp.DaysOff,
		})
		if errors.Is(err, repository.ErrConflict) {
			l.logger.Debug("seed employee already exists", "name", emp.Name)
			continue
		}
		if err != nil {
			return fmt.Errorf("seeding employee %q: %w", emp.Name, err)
		}
		l.logger.Info("seeded employee", "name", emp.Name, "position", emp.Position)
	}

	existing, err := l.projects.List(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	for _, seedProj := range f.Projects {
		if byName[seedProj.Name] {
			l.logger.Debug("seed project already exists", "name", seedProj.Name)
			continue
		}
		if err := l.applyProject(ctx, tenantID, seedProj); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) applyProject(ctx context.Context, tenantID string, seedProj ProjectSeed) error {
	proj, err := l.projects.Create(ctx, tenantID, project.CreateRequest{
		Name:      seedProj.Name,
		StartDate: seedProj.StartDate,
	})
	if err != nil {
		return fmt.Errorf("seeding project %q: %w", seedProj.Name, err)
	}

	ids := make(map[string]int64, len(seedProj.Tasks))
	type pendingEdge struct {
		taskID int64
		after  string
	}
	var edges []pendingEdge

	for _, seedTask := range seedProj.Tasks {
		var parentID *int64
		if seedTask.Parent != "" {
			id, ok := ids[seedTask.Parent]
			if !ok {
				return fmt.Errorf("project %q: task %q references unknown parent %q", seedProj.Name, seedTask.Name, seedTask.Parent)
			}
			parentID = &id
		}

		t, err := l.tasks.Create(ctx, tenantID, task.CreateRequest{
			ProjectID: proj.ID,
			Name:      seedTask.Name,
			Duration:  seedTask.Duration,
			IsGroup:   seedTask.Group,
			Parallel:  seedTask.Parallel,
			ParentID:  parentID,
			Position:  seedTask.Position,
		})
		if err != nil {
			return fmt.Errorf("seeding task %q: %w", seedTask.Name, err)
		}
		if seedTask.Ref != "" {
			ids[seedTask.Ref] = t.ID
		}
		for _, after := range seedTask.After {
			edges = append(edges, pendingEdge{taskID: t.ID, after: after})
		}
	}

	for _, edge := range edges {
		predID, ok := ids[edge.after]
		if !ok {
			return fmt.Errorf("project %q: unknown task ref %q in after clause", seedProj.Name, edge.after)
		}
		if err := l.tasks.AddDependency(ctx, tenantID, task.DependencyEdge{
			TaskID:        edge.taskID,
			PredecessorID: predID,
		}); err != nil {
			return fmt.Errorf("seeding dependency on %q: %w", edge.after, err)
		}
	}

	l.logger.Info("seeded project", "name", seedProj.Name, "tasks", len(seedProj.Tasks))
	return nil
}
