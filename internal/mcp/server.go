package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coursetrack/internal/domain/course"
)

// ProgressService defines progress operations needed by MCP.
type ProgressService interface {
	Snapshot() (course.Snapshot, error)
	Aggregates() (course.Aggregates, error)
	Filter(filter string) (course.FilteredView, error)
	SetStatus(ctx context.Context, groupKey string, index int, status course.Status) (course.Course, error)
	SetGroupStatus(ctx context.Context, groupKey string, status course.Status) (course.Group, error)
	ToggleGroupPassed(ctx context.Context, groupKey string) (course.Group, course.Status, error)
	UnmetPrerequisites(groupKey string, index int) ([]string, error)
}

// Config contains server configuration.
type Config struct {
	Progress ProgressService
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "coursetrack",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Progress, cfg.Logger)

	return server
}
