// Package testserver spins up a fully wired MCP server over HTTP for
// functional tests, backed by an in-memory SQLite database.
package testserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rkulagin/ganttcal/internal/domain/activity"
	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/mcp"
	"github.com/rkulagin/ganttcal/internal/schedule"
	"github.com/rkulagin/ganttcal/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Token    string
	TenantID string
}

func New(t *testing.T, token, tenantID string) *TestServer {
	t.Helper()

	// Shared-cache keeps the in-memory database alive across connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	projectRepo := sqlite.NewProjectRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	runRepo := sqlite.NewRunRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	projectSvc := project.NewService(projectRepo, logger)
	employeeSvc := employee.NewService(employeeRepo, logger)
	taskSvc := task.NewService(taskRepo, logger)
	runSvc := run.NewService(runRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	scheduleSvc := schedule.NewService(projectRepo, taskRepo, employeeRepo, runSvc, activitySvc, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  projectSvc,
			Employees: employeeSvc,
			Tasks:     taskSvc,
			Schedule:  scheduleSvc,
			Runs:      runSvc,
			Activity:  activitySvc,
		},
		Resolver:      &apiKeyResolver{db: db},
		AuthEnabled:   true,
		TransportMode: "http",
		Logger:        logger,
	})

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, &sdkmcp.StreamableHTTPOptions{Stateless: true})

	server := httptest.NewServer(handler)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Token:    token,
		TenantID: tenantID,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	hash := hashToken(token)
	_, err := ts.DB.Exec(
		`INSERT INTO api_keys (key_hash, tenant_id, created_at) VALUES (?, ?, ?)`,
		hash, tenantID, time.Now(),
	)
	return err
}

type apiKeyResolver struct {
	db *sqlite.DB
}

func (r *apiKeyResolver) ResolveTenant(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)
	var tenantID string
	err := r.db.QueryRowContext(ctx, `SELECT tenant_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&tenantID)
	if err != nil || tenantID == "" {
		return "", fmt.Errorf("unknown api key")
	}
	return tenantID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
