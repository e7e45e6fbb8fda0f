package course

import "fmt"

// FilterAll selects every course regardless of status.
const FilterAll = "all"

// Filters lists the accepted filter values in display order.
var Filters = []string{FilterAll, string(StatusPassed), string(StatusActive), string(StatusPending)}

// ParseFilter normalizes a filter value; empty means FilterAll.
func ParseFilter(filter string) (string, error) {
	if filter == "" {
		return FilterAll, nil
	}
	if filter != FilterAll && !Status(filter).Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}
	return filter, nil
}

// Matches reports whether c is selected by an already parsed filter.
func (c Course) Matches(filter string) bool {
	return filter == FilterAll || c.Status == Status(filter)
}

// IndexedCourse is a course together with its position in the unfiltered
// group, which is how mutations address it.
type IndexedCourse struct {
	Index int
	Course
}

// FilteredGroup is one group of a filtered view. Aggregates and AllPassed
// describe the whole group, not only the selected courses.
type FilteredGroup struct {
	Key        string
	Courses    []IndexedCourse
	Aggregates Aggregates
	AllPassed  bool
}

// ToggleLabel names the bulk action offered for the group.
func (g FilteredGroup) ToggleLabel() string {
	return toggleLabel(g.AllPassed)
}

// FilteredView is the result of FilterByStatus. Aggregates cover the whole
// snapshot.
type FilteredView struct {
	Filter     string
	Groups     []FilteredGroup
	Aggregates Aggregates
}

// Group returns the filtered group with the given key.
func (v FilteredView) Group(key string) (FilteredGroup, bool) {
	for _, g := range v.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return FilteredGroup{}, false
}

// FilterByStatus projects the snapshot down to courses matching filter.
// Every group is kept, possibly with an empty course list, so group order and
// keys stay stable for the caller.
func FilterByStatus(s Snapshot, filter string) (FilteredView, error) {
	filter, err := ParseFilter(filter)
	if err != nil {
		return FilteredView{}, err
	}

	view := FilteredView{
		Filter:     filter,
		Groups:     make([]FilteredGroup, len(s.Groups)),
		Aggregates: DeriveAggregates(s),
	}
	for i, g := range s.Groups {
		courses := make([]IndexedCourse, 0, len(g.Courses))
		for j, c := range g.Courses {
			if c.Matches(filter) {
				courses = append(courses, IndexedCourse{Index: j, Course: c.clone()})
			}
		}
		view.Groups[i] = FilteredGroup{
			Key:        g.Key,
			Courses:    courses,
			Aggregates: GroupAggregates(g),
			AllPassed:  AllPassed(g),
		}
	}
	return view, nil
}

// UnmetPrerequisites returns the prerequisite codes of the addressed course
// that are not passed anywhere in the snapshot. Codes missing from the
// snapshot are reported as unmet. Nothing is enforced.
func UnmetPrerequisites(s Snapshot, groupKey string, index int) ([]string, error) {
	g, ok := s.Group(groupKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, groupKey)
	}
	if index < 0 || index >= len(g.Courses) {
		return nil, fmt.Errorf("%w: %d in %q", ErrIndexOutOfRange, index, groupKey)
	}

	passed := make(map[string]bool)
	for _, grp := range s.Groups {
		for _, c := range grp.Courses {
			if c.Status == StatusPassed {
				passed[c.Code] = true
			}
		}
	}

	unmet := []string{}
	for _, code := range g.Courses[index].Prerequisites {
		if !passed[code] {
			unmet = append(unmet, code)
		}
	}
	return unmet, nil
}
