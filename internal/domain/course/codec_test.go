package course_test

import (
	"testing"

	"github.com/rpggio/coursetrack/internal/domain/course"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	snap := course.Fresh([]course.Group{
		{Key: "Year2 - Term1", Courses: []course.Course{
			{Code: "CS201", Title: "Data Structures", Units: course.Units(3), Prerequisites: []string{"CS102"}},
			{Code: "PE3", Title: "Physical Education 3"},
		}},
		{Key: "Year1 - Term1", Courses: []course.Course{
			{Code: "CS101", Title: "Intro", Units: course.Units(0)},
		}},
		{Key: "Year1 - Term3", Courses: []course.Course{}},
	})
	snap, err := course.SetStatus(snap, "Year2 - Term1", 1, course.StatusActive)
	require.NoError(t, err)

	data, err := course.Encode(snap)
	require.NoError(t, err)

	decoded, err := course.Decode(data)
	require.NoError(t, err)
	require.Equal(t, snap, decoded)
	require.Equal(t, []string{"Year2 - Term1", "Year1 - Term1", "Year1 - Term3"}, decoded.Keys())
}

func TestCodec_BrowserFormat(t *testing.T) {
	data := []byte(`{"Year1 - Term1":[{"courseCode":"CS101","courseTitle":"Intro","units":3,"preReqs":[],"status":"passed"},{"courseCode":"NSTP1","courseTitle":"NSTP","status":"pending"}]}`)

	snap, err := course.Decode(data)
	require.NoError(t, err)
	require.Len(t, snap.Groups, 1)
	require.Equal(t, "CS101", snap.Groups[0].Courses[0].Code)
	require.Equal(t, course.StatusPassed, snap.Groups[0].Courses[0].Status)
	require.Nil(t, snap.Groups[0].Courses[0].Prerequisites)
	require.Nil(t, snap.Groups[0].Courses[1].Units)

	out, err := course.Encode(snap)
	require.NoError(t, err)
	require.JSONEq(t, `{"Year1 - Term1":[{"courseCode":"CS101","courseTitle":"Intro","units":3,"status":"passed"},{"courseCode":"NSTP1","courseTitle":"NSTP","status":"pending"}]}`, string(out))
}

func TestCodec_EmptySnapshot(t *testing.T) {
	data, err := course.Encode(course.Snapshot{})
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))

	snap, err := course.Decode(data)
	require.NoError(t, err)
	require.Empty(t, snap.Groups)
}

func TestCodec_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"Year1`,
		"array":           `[]`,
		"bad status":      `{"g":[{"courseCode":"A","status":"done"}]}`,
		"duplicate group": `{"g":[],"g":[]}`,
		"units string":    `{"g":[{"courseCode":"A","units":"three","status":"pending"}]}`,
		"trailing":        `{} {}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := course.Decode([]byte(data))
			require.ErrorIs(t, err, course.ErrMalformedSnapshot)
		})
	}
}
