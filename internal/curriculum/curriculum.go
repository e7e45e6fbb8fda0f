// Package curriculum loads the read-only course catalog, keyed by year then
// term, that seeds the progress tracker.
package curriculum

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/coursetrack/internal/domain/course"
)

//go:embed default.yaml
var defaultData []byte

// Curriculum is an ordered catalog of years, terms and courses.
type Curriculum struct {
	Years []Year
}

// Year groups the terms of one curriculum year.
type Year struct {
	Name  string
	Terms []Term
}

// Term holds the ordered courses of one term.
type Term struct {
	Name    string
	Courses []course.Course
}

type courseEntry struct {
	Code          string    `yaml:"code"`
	Title         string    `yaml:"title"`
	Units         yaml.Node `yaml:"units"`
	Prerequisites []string  `yaml:"prerequisites"`
}

// Default returns the curriculum bundled with the binary.
func Default() (*Curriculum, error) {
	return Parse(defaultData)
}

// Load reads a curriculum YAML file.
func Load(path string) (*Curriculum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML mapping of year -> term -> course list, keeping
// document order at every level.
func Parse(data []byte) (*Curriculum, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCurriculum, err)
	}

	cur := &Curriculum{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return cur, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected mapping of years at line %d", ErrInvalidCurriculum, root.Line)
	}

	codes := make(map[string]string)
	years := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		yearName, termsNode := root.Content[i].Value, root.Content[i+1]
		if years[yearName] {
			return nil, fmt.Errorf("%w: duplicate year %q", ErrInvalidCurriculum, yearName)
		}
		years[yearName] = true

		if termsNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: year %q: expected mapping of terms at line %d", ErrInvalidCurriculum, yearName, termsNode.Line)
		}

		year := Year{Name: yearName}
		terms := make(map[string]bool)
		for j := 0; j+1 < len(termsNode.Content); j += 2 {
			termName, coursesNode := termsNode.Content[j].Value, termsNode.Content[j+1]
			if terms[termName] {
				return nil, fmt.Errorf("%w: duplicate term %q in %q", ErrInvalidCurriculum, termName, yearName)
			}
			terms[termName] = true

			courses, err := parseCourses(coursesNode)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %s: %v", ErrInvalidCurriculum, yearName, termName, err)
			}
			for _, c := range courses {
				if prev, dup := codes[c.Code]; dup {
					return nil, fmt.Errorf("%w: course %q listed in %s and %s - %s", ErrInvalidCurriculum, c.Code, prev, yearName, termName)
				}
				codes[c.Code] = GroupKey(yearName, termName)
			}
			year.Terms = append(year.Terms, Term{Name: termName, Courses: courses})
		}
		cur.Years = append(cur.Years, year)
	}

	return cur, nil
}

func parseCourses(node *yaml.Node) ([]course.Course, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return []course.Course{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected list of courses at line %d", node.Line)
	}

	courses := make([]course.Course, 0, len(node.Content))
	for _, item := range node.Content {
		var entry courseEntry
		if err := item.Decode(&entry); err != nil {
			return nil, fmt.Errorf("line %d: %v", item.Line, err)
		}
		if entry.Code == "" {
			return nil, fmt.Errorf("line %d: course code is required", item.Line)
		}
		c := course.Course{
			Code:   entry.Code,
			Title:  entry.Title,
			Units:  parseUnits(&entry.Units),
			Status: course.StatusPending,
		}
		if len(entry.Prerequisites) > 0 {
			c.Prerequisites = entry.Prerequisites
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// parseUnits accepts finite, non-negative numeric scalars only; anything else
// is treated as missing.
func parseUnits(node *yaml.Node) *float64 {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// GroupKey builds the snapshot group key for a year and term.
func GroupKey(year, term string) string {
	return year + " - " + term
}

// Groups flattens the curriculum into snapshot groups, one per term.
func (c *Curriculum) Groups() []course.Group {
	var groups []course.Group
	for _, y := range c.Years {
		for _, t := range y.Terms {
			courses := make([]course.Course, len(t.Courses))
			copy(courses, t.Courses)
			groups = append(groups, course.Group{Key: GroupKey(y.Name, t.Name), Courses: courses})
		}
	}
	return groups
}

// TotalUnits sums the units of every course in the catalog.
func (c *Curriculum) TotalUnits() float64 {
	var total float64
	for _, y := range c.Years {
		for _, t := range y.Terms {
			for _, crs := range t.Courses {
				total += crs.UnitValue()
			}
		}
	}
	return total
}
