package progress_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/rpggio/coursetrack/internal/domain/course"
	"github.com/rpggio/coursetrack/internal/domain/progress"
	"github.com/rpggio/coursetrack/internal/kvstore"
)

type progressTestContext struct {
	groups   []course.Group
	store    *kvstore.MemoryStore
	svc      *progress.Service
	filtered course.FilteredView
	err      error
}

func (c *progressTestContext) reset() {
	c.groups = nil
	c.store = nil
	c.svc = nil
	c.filtered = course.FilteredView{}
	c.err = nil
}

func (c *progressTestContext) aTermWithCourses(key string, table *godog.Table) error {
	group := course.Group{Key: key}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 3 {
			return fmt.Errorf("row %d: expected code, title and units", i)
		}
		entry := course.Course{Code: row.Cells[0].Value, Title: row.Cells[1].Value}
		if raw := row.Cells[2].Value; raw != "" {
			units, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			entry.Units = course.Units(units)
		}
		group.Courses = append(group.Courses, entry)
	}
	c.groups = append(c.groups, group)
	return nil
}

func (c *progressTestContext) anEmptyProgressStore() error {
	c.store = kvstore.NewMemoryStore()
	return nil
}

func (c *progressTestContext) theTrackerIsInitialized(ctx context.Context) error {
	c.svc = progress.NewService(c.store, nil, progress.Options{})
	_, err := c.svc.Initialize(ctx, c.groups)
	return err
}

func (c *progressTestContext) theTrackerIsRestarted(ctx context.Context) error {
	return c.theTrackerIsInitialized(ctx)
}

func (c *progressTestContext) courseIsMarked(ctx context.Context, index int, key, status string) error {
	_, c.err = c.svc.SetStatus(ctx, key, index, course.Status(status))
	return nil
}

func (c *progressTestContext) theTermIsToggled(ctx context.Context, key string) error {
	_, _, err := c.svc.ToggleGroupPassed(ctx, key)
	return err
}

func (c *progressTestContext) theProgressIsFilteredBy(filter string) error {
	var err error
	c.filtered, err = c.svc.Filter(filter)
	return err
}

func (c *progressTestContext) coursesArePassed(passed, total int) error {
	agg, err := c.svc.Aggregates()
	if err != nil {
		return err
	}
	if agg.PassedCourses != passed || agg.TotalCourses != total {
		return fmt.Errorf("expected %d of %d courses passed, got %d of %d",
			passed, total, agg.PassedCourses, agg.TotalCourses)
	}
	return nil
}

func (c *progressTestContext) theCompletionIs(percent int) error {
	agg, err := c.svc.Aggregates()
	if err != nil {
		return err
	}
	if agg.PercentComplete != percent {
		return fmt.Errorf("expected %d percent, got %d", percent, agg.PercentComplete)
	}
	return nil
}

func (c *progressTestContext) unitsArePassed(passed, total float64) error {
	agg, err := c.svc.Aggregates()
	if err != nil {
		return err
	}
	if agg.PassedUnits != passed || agg.TotalUnits != total {
		return fmt.Errorf("expected %g of %g units passed, got %g of %g",
			passed, total, agg.PassedUnits, agg.TotalUnits)
	}
	return nil
}

func (c *progressTestContext) courseIs(index int, key, status string) error {
	snap, err := c.svc.Snapshot()
	if err != nil {
		return err
	}
	g, ok := snap.Group(key)
	if !ok {
		return fmt.Errorf("no group %q", key)
	}
	if index < 0 || index >= len(g.Courses) {
		return fmt.Errorf("no course %d in %q", index, key)
	}
	if got := g.Courses[index].Status; got != course.Status(status) {
		return fmt.Errorf("expected %s to be %q, got %q", g.Courses[index].Code, status, got)
	}
	return nil
}

func (c *progressTestContext) everyCourseIs(key, status string) error {
	snap, err := c.svc.Snapshot()
	if err != nil {
		return err
	}
	g, ok := snap.Group(key)
	if !ok {
		return fmt.Errorf("no group %q", key)
	}
	for _, entry := range g.Courses {
		if entry.Status != course.Status(status) {
			return fmt.Errorf("expected %s to be %q, got %q", entry.Code, status, entry.Status)
		}
	}
	return nil
}

func (c *progressTestContext) theFilteredViewHasGroups(n int) error {
	if len(c.filtered.Groups) != n {
		return fmt.Errorf("expected %d groups, got %d", n, len(c.filtered.Groups))
	}
	return nil
}

func (c *progressTestContext) theFilteredGroupHasCourses(key string, n int) error {
	g, ok := c.filtered.Group(key)
	if !ok {
		return fmt.Errorf("filtered view is missing group %q", key)
	}
	if len(g.Courses) != n {
		return fmt.Errorf("expected %d courses in %q, got %d", n, key, len(g.Courses))
	}
	return nil
}

func (c *progressTestContext) theOperationFailsWith(substring string) error {
	if c.err == nil {
		return errors.New("expected operation to fail but it succeeded")
	}
	if !strings.Contains(c.err.Error(), substring) {
		return fmt.Errorf("expected error to contain %q, got %q", substring, c.err.Error())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &progressTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a term "([^"]*)" with courses:$`, tc.aTermWithCourses)
	ctx.Step(`^an empty progress store$`, tc.anEmptyProgressStore)
	ctx.Step(`^the tracker is initialized$`, tc.theTrackerIsInitialized)

	ctx.Step(`^the tracker is restarted$`, tc.theTrackerIsRestarted)
	ctx.Step(`^course (\d+) of "([^"]*)" is marked "([^"]*)"$`, tc.courseIsMarked)
	ctx.Step(`^the term "([^"]*)" is toggled$`, tc.theTermIsToggled)
	ctx.Step(`^the progress is filtered by "([^"]*)"$`, tc.theProgressIsFilteredBy)

	ctx.Step(`^(\d+) of (\d+) courses are passed$`, tc.coursesArePassed)
	ctx.Step(`^the completion is (\d+) percent$`, tc.theCompletionIs)
	ctx.Step(`^(\d+(?:\.\d+)?) of (\d+(?:\.\d+)?) units are passed$`, tc.unitsArePassed)
	ctx.Step(`^course (\d+) of "([^"]*)" is "([^"]*)"$`, tc.courseIs)
	ctx.Step(`^every course in "([^"]*)" is "([^"]*)"$`, tc.everyCourseIs)
	ctx.Step(`^the filtered view has (\d+) groups?$`, tc.theFilteredViewHasGroups)
	ctx.Step(`^the filtered group "([^"]*)" has (\d+) courses?$`, tc.theFilteredGroupHasCourses)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/progress.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
