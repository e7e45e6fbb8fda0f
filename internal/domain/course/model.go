package course

import "math"

// Status represents the completion state of a course
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusPassed  Status = "passed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusActive, StatusPassed}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusPassed:
		return true
	}
	return false
}

// Course is a single curriculum entry with its live status.
// JSON keys follow the browser storage format the tracker has always used.
type Course struct {
	Code          string   `json:"courseCode"`
	Title         string   `json:"courseTitle"`
	Units         *float64 `json:"units,omitempty"`
	Prerequisites []string `json:"preReqs,omitempty"`
	Status        Status   `json:"status"`
}

// HasUnits reports whether the course carries a usable unit count: present,
// finite and not negative.
func (c Course) HasUnits() bool {
	if c.Units == nil {
		return false
	}
	u := *c.Units
	return !math.IsNaN(u) && !math.IsInf(u, 0) && u >= 0
}

// UnitValue returns the units counted toward aggregates. Missing or invalid
// units count as zero.
func (c Course) UnitValue() float64 {
	if !c.HasUnits() {
		return 0
	}
	return *c.Units
}

func (c Course) clone() Course {
	out := c
	if c.Units != nil {
		u := *c.Units
		out.Units = &u
	}
	out.Prerequisites = nil
	if len(c.Prerequisites) > 0 {
		out.Prerequisites = append([]string(nil), c.Prerequisites...)
	}
	return out
}

// Group is a year/term bucket holding an ordered list of courses.
type Group struct {
	Key     string   `json:"key"`
	Courses []Course `json:"courses"`
}

func (g Group) clone() Group {
	out := Group{Key: g.Key, Courses: make([]Course, len(g.Courses))}
	for i, c := range g.Courses {
		out.Courses[i] = c.clone()
	}
	return out
}

// Snapshot is the full curriculum with live statuses, in group order.
// Courses are addressed by (group key, index).
type Snapshot struct {
	Groups []Group
}

// Group returns the group with the given key.
func (s Snapshot) Group(key string) (Group, bool) {
	i := s.indexOf(key)
	if i < 0 {
		return Group{}, false
	}
	return s.Groups[i], true
}

// Keys returns the group keys in order.
func (s Snapshot) Keys() []string {
	keys := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		keys[i] = g.Key
	}
	return keys
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Groups: make([]Group, len(s.Groups))}
	for i, g := range s.Groups {
		out.Groups[i] = g.clone()
	}
	return out
}

func (s Snapshot) indexOf(key string) int {
	for i, g := range s.Groups {
		if g.Key == key {
			return i
		}
	}
	return -1
}

// Units returns a pointer to v, for building courses in code.
func Units(v float64) *float64 {
	return &v
}
