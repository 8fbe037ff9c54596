package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// stdioSession wraps an MCP client session for stdio transport testing
type stdioSession struct {
	session *sdkmcp.ClientSession
	cancel  context.CancelFunc
}

func newStdioSession(t *testing.T) *stdioSession {
	t.Helper()
	return newStdioSessionWithEnv(t, nil)
}

func newStdioSessionWithEnv(t *testing.T, extraEnv []string) *stdioSession {
	t.Helper()

	// Find the binary
	binaryPath := "./bin/ganttcal"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/ganttcal"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'make build' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"GANTTCAL_TRANSPORT=stdio",
		"GANTTCAL_DB_PATH=:memory:",
		"GANTTCAL_AUTH_ENABLED=false",
	)
	if len(extraEnv) > 0 {
		cmd.Env = append(cmd.Env, extraEnv...)
	}

	transport := &sdkmcp.CommandTransport{Command: cmd}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return &stdioSession{session: session, cancel: cancel}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	// Extract text content
	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestStdioFunctional_SchedulingWorkflow(t *testing.T) {
	s := newStdioSession(t)

	create := s.callTool(t, "create_project", map[string]any{
		"name":       "Launch",
		"start_date": "2026-01-05",
	})
	var project struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(create, &project))
	require.NotEmpty(t, project.ID)

	_ = s.callTool(t, "add_employee", map[string]any{"name": "Alice", "position": "developer"})

	taskResp := s.callTool(t, "create_task", map[string]any{
		"project_id": project.ID,
		"name":       "Design",
		"duration":   2,
	})
	var task struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(taskResp, &task))

	schedResp := s.callTool(t, "calculate_schedule", map[string]any{"project_id": project.ID})
	var sched struct {
		Tasks []struct {
			TaskID    int64  `json:"task_id"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		} `json:"tasks"`
		CriticalPath []int64 `json:"critical_path"`
	}
	require.NoError(t, json.Unmarshal(schedResp, &sched))
	require.Len(t, sched.Tasks, 1)
	require.Equal(t, "2026-01-05", sched.Tasks[0].StartDate)
	require.Equal(t, "2026-01-06", sched.Tasks[0].EndDate)
	require.Equal(t, []int64{task.ID}, sched.CriticalPath)

	list := s.callTool(t, "list_projects", nil)
	require.Contains(t, string(list), project.ID)

	history := s.callTool(t, "get_run_history", map[string]any{"project_id": project.ID})
	require.Contains(t, string(history), "completed")
}

func TestStdioFunctional_MCPProtocolCompliance(t *testing.T) {
	s := newStdioSession(t)

	// Verify server info from initialization
	initResult := s.session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "ganttcal", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)

	// Test tools/list
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := s.session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tools.Tools), 11, "should expose all scheduling tools")

	// Verify expected tools exist with proper metadata
	toolMap := make(map[string]*sdkmcp.Tool)
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}

	require.Contains(t, toolMap, "create_project")
	require.Contains(t, toolMap, "calculate_schedule")
	require.Contains(t, toolMap, "add_employee")
	require.NotEmpty(t, toolMap["calculate_schedule"].Description)
}

func TestStdioFunctional_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ganttcal.log")
	s := newStdioSessionWithEnv(t, []string{
		"GANTTCAL_LOG_PATH=" + logPath,
		"GANTTCAL_LOG_LEVEL=debug",
	})

	_ = s.callTool(t, "list_projects", nil)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		text := string(data)
		return strings.Contains(text, `msg="mcp traffic"`) &&
			strings.Contains(text, "stage=request") &&
			strings.Contains(text, "stage=response")
	}, 5*time.Second, 100*time.Millisecond)
}

func TestStdioFunctional_DocumentationResources(t *testing.T) {
	s := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resources, err := s.session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, resources.Resources)

	uris := make(map[string]*sdkmcp.Resource, len(resources.Resources))
	for _, r := range resources.Resources {
		uris[r.URI] = r
	}

	r, ok := uris["ganttcal://docs/scheduling-model"]
	require.True(t, ok, "missing expected doc resource")
	require.NotEmpty(t, r.Name)
	require.Equal(t, "text/markdown", r.MIMEType)
	require.Greater(t, r.Size, int64(0))

	read, err := s.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "ganttcal://docs/scheduling-model"})
	require.NoError(t, err)
	require.NotEmpty(t, read.Contents)
	require.Equal(t, "ganttcal://docs/scheduling-model", read.Contents[0].URI)
	require.Equal(t, "text/markdown", read.Contents[0].MIMEType)
	require.Contains(t, read.Contents[0].Text, "Scheduling model")
}
