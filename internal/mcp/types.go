package mcp

import "github.com/rpggio/coursetrack/internal/domain/course"

type GetProgressParams struct {
	Filter string `json:"filter,omitempty" jsonschema:"one of all, passed, active, pending; defaults to all"`
}

type GetAggregatesParams struct{}

type SetCourseStatusParams struct {
	Group  string `json:"group" jsonschema:"group key, for example Year1 - Term1"`
	Index  int    `json:"index" jsonschema:"zero-based position of the course within the group"`
	Status string `json:"status" jsonschema:"pending, active or passed"`
}

type SetGroupStatusParams struct {
	Group  string `json:"group" jsonschema:"group key, for example Year1 - Term1"`
	Status string `json:"status" jsonschema:"pending, active or passed"`
}

type ToggleGroupPassedParams struct {
	Group string `json:"group" jsonschema:"group key, for example Year1 - Term1"`
}

type GetPrerequisitesParams struct {
	Group string `json:"group" jsonschema:"group key, for example Year1 - Term1"`
	Index int    `json:"index" jsonschema:"zero-based position of the course within the group"`
}

type CourseResponse struct {
	Index         int      `json:"index"`
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Units         *float64 `json:"units,omitempty"`
	UnitsLabel    string   `json:"units_label"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Status        string   `json:"status"`
}

type GroupResponse struct {
	Key         string            `json:"key"`
	Label       string            `json:"label"`
	ToggleLabel string            `json:"toggle_label"`
	Courses     []CourseResponse  `json:"courses"`
	Aggregates  course.Aggregates `json:"aggregates"`
}

type ProgressResponse struct {
	Filter     string            `json:"filter"`
	Groups     []GroupResponse   `json:"groups"`
	Aggregates course.Aggregates `json:"aggregates"`
}

type AggregatesResponse struct {
	Aggregates course.Aggregates `json:"aggregates"`
}

type CourseStatusResponse struct {
	Group      string            `json:"group"`
	Course     CourseResponse    `json:"course"`
	Aggregates course.Aggregates `json:"aggregates"`
}

type GroupStatusResponse struct {
	Group      GroupResponse     `json:"group"`
	Aggregates course.Aggregates `json:"aggregates"`
}

type ToggleResponse struct {
	Applied    string            `json:"applied"`
	Group      GroupResponse     `json:"group"`
	Aggregates course.Aggregates `json:"aggregates"`
}

type PrerequisitesResponse struct {
	Course        CourseResponse `json:"course"`
	Prerequisites []string       `json:"prerequisites"`
	Unmet         []string       `json:"unmet"`
}

func courseResponse(index int, c course.Course) CourseResponse {
	return CourseResponse{
		Index:         index,
		Code:          c.Code,
		Title:         c.Title,
		Units:         c.Units,
		UnitsLabel:    c.UnitsLabel(),
		Prerequisites: c.Prerequisites,
		Status:        string(c.Status),
	}
}

func groupResponse(g course.Group) GroupResponse {
	resp := GroupResponse{
		Key:         g.Key,
		Label:       course.GroupLabel(g.Key),
		ToggleLabel: course.ToggleLabel(g),
		Courses:     make([]CourseResponse, 0, len(g.Courses)),
		Aggregates:  course.GroupAggregates(g),
	}
	for i, c := range g.Courses {
		resp.Courses = append(resp.Courses, courseResponse(i, c))
	}
	return resp
}

// filteredGroupResponse renders a group of a filtered view. Aggregates and the
// toggle label still describe the whole group.
func filteredGroupResponse(g course.FilteredGroup) GroupResponse {
	resp := GroupResponse{
		Key:         g.Key,
		Label:       course.GroupLabel(g.Key),
		ToggleLabel: g.ToggleLabel(),
		Courses:     make([]CourseResponse, 0, len(g.Courses)),
		Aggregates:  g.Aggregates,
	}
	for _, c := range g.Courses {
		resp.Courses = append(resp.Courses, courseResponse(c.Index, c.Course))
	}
	return resp
}
