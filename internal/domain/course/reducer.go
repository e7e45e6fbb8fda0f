package course

import "fmt"

// Fresh copies the groups into a new snapshot with every status pending.
// Invalid unit counts are dropped so the snapshot always encodes.
func Fresh(groups []Group) Snapshot {
	out := Snapshot{Groups: make([]Group, len(groups))}
	for i, g := range groups {
		out.Groups[i] = g.clone()
		for j := range out.Groups[i].Courses {
			c := &out.Groups[i].Courses[j]
			c.Status = StatusPending
			if !c.HasUnits() {
				c.Units = nil
			}
		}
	}
	return out
}

// SetStatus returns a snapshot where only the addressed course has the new
// status. The input snapshot is not modified.
func SetStatus(s Snapshot, groupKey string, index int, status Status) (Snapshot, error) {
	if !status.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	gi := s.indexOf(groupKey)
	if gi < 0 {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrGroupNotFound, groupKey)
	}
	if index < 0 || index >= len(s.Groups[gi].Courses) {
		return Snapshot{}, fmt.Errorf("%w: %d in %q", ErrIndexOutOfRange, index, groupKey)
	}

	out := s.withGroupCopied(gi)
	out.Groups[gi].Courses[index].Status = status
	return out, nil
}

// SetGroupStatus returns a snapshot where every course in the group has the
// new status.
func SetGroupStatus(s Snapshot, groupKey string, status Status) (Snapshot, error) {
	if !status.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	gi := s.indexOf(groupKey)
	if gi < 0 {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrGroupNotFound, groupKey)
	}

	out := s.withGroupCopied(gi)
	for i := range out.Groups[gi].Courses {
		out.Groups[gi].Courses[i].Status = status
	}
	return out, nil
}

// AllPassed reports whether every course in the group is passed. An empty
// group counts as all passed.
func AllPassed(g Group) bool {
	for _, c := range g.Courses {
		if c.Status != StatusPassed {
			return false
		}
	}
	return true
}

// ToggleGroupPassed moves a fully passed group back to pending and any other
// group to fully passed. It returns the status that was applied.
func ToggleGroupPassed(s Snapshot, groupKey string) (Snapshot, Status, error) {
	g, ok := s.Group(groupKey)
	if !ok {
		return Snapshot{}, "", fmt.Errorf("%w: %q", ErrGroupNotFound, groupKey)
	}
	next := StatusPassed
	if AllPassed(g) {
		next = StatusPending
	}
	out, err := SetGroupStatus(s, groupKey, next)
	if err != nil {
		return Snapshot{}, "", err
	}
	return out, next, nil
}

// withGroupCopied returns a shallow copy of the group list with group i
// deep-copied, so the caller may mutate it freely.
func (s Snapshot) withGroupCopied(i int) Snapshot {
	groups := make([]Group, len(s.Groups))
	copy(groups, s.Groups)
	groups[i] = s.Groups[i].clone()
	return Snapshot{Groups: groups}
}
