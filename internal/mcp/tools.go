package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coursetrack/internal/domain/course"
)

type tools struct {
	progress ProgressService
	logger   *slog.Logger
}

func registerTools(server *sdkmcp.Server, progress ProgressService, logger *slog.Logger) {
	t := &tools{progress: progress, logger: logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_progress",
		Description: "List every term group with its courses and statuses, optionally filtered by status, plus overall aggregates",
	}, t.getProgress)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_aggregates",
		Description: "Get total and passed course counts, unit totals and percent complete",
	}, t.getAggregates)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_course_status",
		Description: "Set the status of one course, addressed by group key and index",
	}, t.setCourseStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_group_status",
		Description: "Set every course in a group to the same status",
	}, t.setGroupStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_group_passed",
		Description: "Mark every course in a group passed, or reset them all to pending when they already are",
	}, t.toggleGroupPassed)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_prerequisites",
		Description: "List a course's prerequisites and which of them are not passed yet. Informational only",
	}, t.getPrerequisites)
}

func (t *tools) getProgress(_ context.Context, _ *sdkmcp.CallToolRequest, in GetProgressParams) (*sdkmcp.CallToolResult, ProgressResponse, error) {
	view, err := t.progress.Filter(in.Filter)
	if err != nil {
		return nil, ProgressResponse{}, toolError(err)
	}

	resp := ProgressResponse{
		Filter:     view.Filter,
		Groups:     make([]GroupResponse, 0, len(view.Groups)),
		Aggregates: view.Aggregates,
	}
	for _, g := range view.Groups {
		resp.Groups = append(resp.Groups, filteredGroupResponse(g))
	}
	return nil, resp, nil
}

func (t *tools) getAggregates(_ context.Context, _ *sdkmcp.CallToolRequest, _ GetAggregatesParams) (*sdkmcp.CallToolResult, AggregatesResponse, error) {
	agg, err := t.progress.Aggregates()
	if err != nil {
		return nil, AggregatesResponse{}, toolError(err)
	}
	return nil, AggregatesResponse{Aggregates: agg}, nil
}

func (t *tools) setCourseStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetCourseStatusParams) (*sdkmcp.CallToolResult, CourseStatusResponse, error) {
	updated, err := t.progress.SetStatus(ctx, in.Group, in.Index, course.Status(in.Status))
	if err != nil {
		return nil, CourseStatusResponse{}, t.fail("set_course_status", err)
	}
	agg, err := t.progress.Aggregates()
	if err != nil {
		return nil, CourseStatusResponse{}, toolError(err)
	}
	return nil, CourseStatusResponse{
		Group:      in.Group,
		Course:     courseResponse(in.Index, updated),
		Aggregates: agg,
	}, nil
}

func (t *tools) setGroupStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetGroupStatusParams) (*sdkmcp.CallToolResult, GroupStatusResponse, error) {
	g, err := t.progress.SetGroupStatus(ctx, in.Group, course.Status(in.Status))
	if err != nil {
		return nil, GroupStatusResponse{}, t.fail("set_group_status", err)
	}
	agg, err := t.progress.Aggregates()
	if err != nil {
		return nil, GroupStatusResponse{}, toolError(err)
	}
	return nil, GroupStatusResponse{
		Group:      groupResponse(g),
		Aggregates: agg,
	}, nil
}

func (t *tools) toggleGroupPassed(ctx context.Context, _ *sdkmcp.CallToolRequest, in ToggleGroupPassedParams) (*sdkmcp.CallToolResult, ToggleResponse, error) {
	g, applied, err := t.progress.ToggleGroupPassed(ctx, in.Group)
	if err != nil {
		return nil, ToggleResponse{}, t.fail("toggle_group_passed", err)
	}
	agg, err := t.progress.Aggregates()
	if err != nil {
		return nil, ToggleResponse{}, toolError(err)
	}
	return nil, ToggleResponse{
		Applied:    string(applied),
		Group:      groupResponse(g),
		Aggregates: agg,
	}, nil
}

func (t *tools) getPrerequisites(_ context.Context, _ *sdkmcp.CallToolRequest, in GetPrerequisitesParams) (*sdkmcp.CallToolResult, PrerequisitesResponse, error) {
	unmet, err := t.progress.UnmetPrerequisites(in.Group, in.Index)
	if err != nil {
		return nil, PrerequisitesResponse{}, toolError(err)
	}
	snap, err := t.progress.Snapshot()
	if err != nil {
		return nil, PrerequisitesResponse{}, toolError(err)
	}
	g, _ := snap.Group(in.Group)
	c := g.Courses[in.Index]

	prereqs := c.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}
	return nil, PrerequisitesResponse{
		Course:        courseResponse(in.Index, c),
		Prerequisites: prereqs,
		Unmet:         unmet,
	}, nil
}

// fail logs a rejected mutation and converts the error for the client.
func (t *tools) fail(tool string, err error) error {
	apiErr := MapError(err)
	if apiErr == nil {
		t.logger.Error("tool failed", "tool", tool, "error", err)
		return err
	}
	t.logger.Warn("tool rejected", "tool", tool, "code", apiErr.Code, "error", err)
	return apiErr
}
