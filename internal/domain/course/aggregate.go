package course

import "math"

// Aggregates are summary statistics derived from a snapshot. They are never
// persisted.
type Aggregates struct {
	TotalCourses    int     `json:"total_courses"`
	PassedCourses   int     `json:"passed_courses"`
	PercentComplete int     `json:"percent_complete"`
	TotalUnits      float64 `json:"total_units"`
	PassedUnits     float64 `json:"passed_units"`
}

// DeriveAggregates computes the aggregates for s.
func DeriveAggregates(s Snapshot) Aggregates {
	var agg Aggregates
	for _, g := range s.Groups {
		for _, c := range g.Courses {
			agg.TotalCourses++
			units := c.UnitValue()
			agg.TotalUnits += units
			if c.Status == StatusPassed {
				agg.PassedCourses++
				agg.PassedUnits += units
			}
		}
	}
	if agg.TotalCourses > 0 {
		agg.PercentComplete = int(math.Round(float64(agg.PassedCourses) / float64(agg.TotalCourses) * 100))
	}
	return agg
}

// GroupAggregates computes the aggregates for a single group.
func GroupAggregates(g Group) Aggregates {
	return DeriveAggregates(Snapshot{Groups: []Group{g}})
}
