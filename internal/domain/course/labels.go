package course

import (
	"fmt"
	"regexp"
	"strconv"
)

var wordNumber = regexp.MustCompile(`([A-Za-z]+)(\d+)`)

// GroupLabel spaces out word/number runs in a group key, so "Year1 - Term1"
// reads "Year 1 - Term 1".
func GroupLabel(key string) string {
	return wordNumber.ReplaceAllString(key, "$1 $2")
}

// UnitsLabel renders the unit count, or "N/A" when units are missing or
// invalid.
func (c Course) UnitsLabel() string {
	if !c.HasUnits() {
		return "N/A"
	}
	n := strconv.FormatFloat(*c.Units, 'f', -1, 64)
	if *c.Units == 1 {
		return n + " unit"
	}
	return fmt.Sprintf("%s units", n)
}

// ToggleLabel names the bulk action offered for the group.
func ToggleLabel(g Group) string {
	return toggleLabel(AllPassed(g))
}

func toggleLabel(allPassed bool) string {
	if allPassed {
		return "Unmark All as Passed"
	}
	return "Mark All as Passed"
}
