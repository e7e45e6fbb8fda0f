package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `coursetrack tracks progress through a degree curriculum.

Model:
- Courses are grouped by "<year> - <term>" (for example "Year1 - Term1"); group order is the curriculum order.
- Each course has a code, title, optional units, informational prerequisites and a status: pending, active or passed.
- Aggregates (total/passed courses, total/passed units, percent complete) are always derived from the statuses.

Workflow:
1) Call get_progress to see groups, course indexes and statuses. Pass filter to narrow by status.
2) Change one course with set_course_status(group, index, status), or a whole group with set_group_status.
3) toggle_group_passed marks a group passed, or resets it to pending when every course is already passed.
4) get_prerequisites shows unmet prerequisites; nothing is blocked by them.

Every change is saved before the tool returns.

Docs:
- coursetrack://docs/index
- coursetrack://docs/model
- coursetrack://docs/curriculum
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
		URI:         "coursetrack://docs/index",
		Name:        "docs_index",
		Title:       "coursetrack docs index",
		Description: "Entry point: what the server tracks and where to read more.",
		Content: `# coursetrack docs

- coursetrack://docs/model: statuses, groups, aggregates and errors.
- coursetrack://docs/curriculum: the curriculum file format.

## Tools

| tool | purpose |
|------|---------|
| get_progress | groups with courses, optional status filter |
| get_aggregates | summary numbers only |
| set_course_status | one course |
| set_group_status | every course in a group |
| toggle_group_passed | mark all passed, or unmark |
| get_prerequisites | unmet prerequisites of one course |
`,
	},
	{
		URI:         "coursetrack://docs/model",
		Name:        "docs_model",
		Title:       "Progress model",
		Description: "Statuses, addressing, aggregate rules and error codes.",
		Content: `# Progress model

## Addressing

A course is addressed by its group key and its zero-based index inside that
group. Indexes returned by get_progress always refer to the unfiltered group.

## Statuses

pending, active, passed. Any status may change to any other; setting the
current status again is a no-op that is still saved.

## Aggregates

- percent_complete = round(passed_courses / total_courses * 100), 0 when there are no courses.
- Courses without units count as 0 units.

## Toggle

If every course in the group is passed (an empty group counts), all become
pending. Otherwise all become passed.

## Error codes

- GROUP_NOT_FOUND: unknown group key.
- INDEX_OUT_OF_RANGE: no course at that index.
- INVALID_STATUS: status is not pending, active or passed.
- INVALID_FILTER: filter is not all, passed, active or pending.
- NOT_INITIALIZED: progress was not loaded at startup.
`,
	},
	{
		URI:         "coursetrack://docs/curriculum",
		Name:        "docs_curriculum",
		Title:       "Curriculum format",
		Description: "YAML layout of the curriculum the progress is seeded from.",
		Content: `# Curriculum format

The curriculum is YAML: years map to terms, terms list courses. Mapping order
is kept.

` + "```yaml" + `
Year1:
  Term1:
    - {code: CS101, title: Intro to Computing, units: 3}
    - {code: MA101, title: Calculus I, units: 4, prerequisites: []}
` + "```" + `

The curriculum only seeds progress on first run. Once progress has been
saved, later curriculum edits are not merged into it.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
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
