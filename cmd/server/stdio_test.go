package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// stdioSession drives a built server binary over stdin/stdout.
type stdioSession struct {
	session *sdkmcp.ClientSession
}

func newStdioSession(t *testing.T, env ...string) *stdioSession {
	t.Helper()

	binaryPath := filepath.Join("..", "..", "bin", "coursetrack")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skip("server binary not found; build it with: go build -o bin/coursetrack ./cmd/server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"COURSETRACK_ENV_FILE="+filepath.Join(t.TempDir(), "none.env"),
		"COURSETRACK_TRANSPORT=stdio",
	)
	cmd.Env = append(cmd.Env, env...)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
	})
	return &stdioSession{session: session}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if args == nil {
		args = map[string]any{}
	}
	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content, "tool %s returned no content", name)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "tool %s returned no text content", name)
	require.False(t, result.IsError, "tool %s returned error: %s", name, text.Text)
	return json.RawMessage(text.Text)
}

type aggregatesOnly struct {
	Aggregates struct {
		TotalCourses  int `json:"total_courses"`
		PassedCourses int `json:"passed_courses"`
	} `json:"aggregates"`
}

func TestStdio_PersistsAcrossProcesses(t *testing.T) {
	storeDir := t.TempDir()
	env := []string{
		"COURSETRACK_STORAGE_BACKEND=file",
		"COURSETRACK_STORAGE_PATH=" + storeDir,
	}

	s := newStdioSession(t, env...)
	var progress struct {
		Groups []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(s.callTool(t, "get_progress", nil), &progress))
	require.NotEmpty(t, progress.Groups)

	var first aggregatesOnly
	raw := s.callTool(t, "set_course_status", map[string]any{
		"group":  progress.Groups[0].Key,
		"index":  0,
		"status": "passed",
	})
	require.NoError(t, json.Unmarshal(raw, &first))
	require.Equal(t, 1, first.Aggregates.PassedCourses)
	_ = s.session.Close()

	_, err := os.Stat(filepath.Join(storeDir, "courseStatus.json"))
	require.NoError(t, err)

	again := newStdioSession(t, env...)
	var second aggregatesOnly
	require.NoError(t, json.Unmarshal(again.callTool(t, "get_aggregates", nil), &second))
	require.Equal(t, first.Aggregates, second.Aggregates)
}
