package mcp

import (
	"context"
	"log/slog"

	"github.com/rkulagin/ganttcal/internal/domain/activity"
	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/schedule"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, tenantID string, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error)
	Get(ctx context.Context, tenantID, id string) (*project.Project, error)
}

// EmployeeService defines employee operations needed by MCP.
type EmployeeService interface {
	Create(ctx context.Context, tenantID string, req employee.CreateRequest) (*employee.Employee, error)
	List(ctx context.Context, tenantID string) ([]employee.EmployeeSummary, error)
}

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, tenantID string, req task.CreateRequest) (*task.Task, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]task.Task, error)
	AddDependency(ctx context.Context, tenantID string, edge task.DependencyEdge) error
}

// ScheduleService defines scheduling operations needed by MCP.
type ScheduleService interface {
	Calculate(ctx context.Context, tenantID, projectID string) (*schedule.Result, error)
}

// RunService defines run history operations needed by MCP.
type RunService interface {
	History(ctx context.Context, tenantID, projectID string, limit int) ([]run.Run, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects  ProjectService
	Employees EmployeeService
	Tasks     TaskService
	Schedule  ScheduleService
	Runs      RunService
	Activity  ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "ganttcal",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode: always disable auth (local dev only)
	if cfg.TransportMode == "stdio" {
		server.AddReceivingMiddleware(noAuthMiddleware("default"))
	} else {
		if cfg.AuthEnabled {
			server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
		} else {
			server.AddReceivingMiddleware(noAuthMiddleware("default"))
		}
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
