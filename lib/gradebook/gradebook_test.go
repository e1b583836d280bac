package gradebook

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	for _, id := range []string{"017", "000", "999"} {
		require.NoError(t, ValidateIdentifier(id), id)
	}
	for _, id := range []string{"", "17", "0170", "abc", "01a", " 17", "١٢٣"} {
		require.ErrorIs(t, ValidateIdentifier(id), ErrInvalidIdentifier, id)
	}
}

func TestLocate(t *testing.T) {
	rows := []Row{
		{},
		{"Matrikelnummer", "UE1", "UE2"},
		{"xxxx017", "2334"},
		{"yyyy017", "5555"},
		{" 12345 ", "1111"},
	}

	row, ok := Locate(rows, "017")
	require.True(t, ok)
	require.Equal(t, Row{"xxxx017", "2334"}, row)

	row, ok = Locate(rows, "345")
	require.True(t, ok)
	require.Equal(t, rows[4], row)

	_, ok = Locate([]Row{{"0\u200b17", "2334"}}, "017")
	require.False(t, ok)

	_, ok = Locate(rows, "999")
	require.False(t, ok)

	_, ok = Locate(nil, "017")
	require.False(t, ok)
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name     string
		row      Row
		expected []int
	}{
		{name: "compact", row: Row{"017", "2334"}, expected: []int{2, 3, 3, 4}},
		{name: "compact five", row: Row{"017", "12345"}, expected: []int{1, 2, 3, 4, 5}},
		{name: "barred", row: Row{"017", "23|41"}, expected: []int{2, 3, 4, 1}},
		{name: "barred single groups", row: Row{"017", "5|5|1"}, expected: []int{5, 5, 1}},
		{name: "trimmed", row: Row{"017", "  2334\n"}, expected: []int{2, 3, 3, 4}},
		{
			name:     "mixed cells keep order",
			row:      Row{"017", "abc", "2334", "23|41", "260"},
			expected: []int{2, 3, 3, 4, 2, 3, 4, 1},
		},
		{name: "first cell skipped", row: Row{"2334", "1111"}, expected: []int{1, 1, 1, 1}},
		{name: "text", row: Row{"017", "abc"}},
		{name: "six digits", row: Row{"017", "123456"}},
		{name: "three digits", row: Row{"017", "123"}},
		{name: "invalid digits", row: Row{"017", "260"}},
		{name: "invalid digit in compact", row: Row{"017", "2306"}},
		{name: "invalid digit in barred", row: Row{"017", "23|60"}},
		{name: "bar with spaces", row: Row{"017", "23 | 41"}},
		{name: "zero width space", row: Row{"017", "2\u200b334"}},
		{name: "soft hyphen in barred", row: Row{"017", "23\u00ad|41"}},
		{name: "id only", row: Row{"017"}},
		{name: "empty row", row: Row{}},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := Extract(test.row)
			if diff := cmp.Diff(test.expected, got, cmpEmpty); diff != "" {
				t.Fatalf("unexpected grades (-want +got):\n%s", diff)
			}
			for _, g := range got {
				require.GreaterOrEqual(t, g, 1)
				require.LessOrEqual(t, g, 5)
			}
		})
	}
}

// nil and empty slices are the same thing here.
var cmpEmpty = cmp.Comparer(func(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
})

func TestClassify(t *testing.T) {
	cases := []struct {
		grades  []int
		mean    float64
		outcome Outcome
	}{
		{grades: []int{3, 3, 3, 3}, mean: 3, outcome: OutcomeGoodStanding},
		{grades: []int{1, 1, 1, 1}, mean: 1, outcome: OutcomeGoodStanding},
		{grades: []int{3, 4}, mean: 3.5, outcome: OutcomeFinalTestRequired},
		{grades: []int{4, 4, 4, 4}, mean: 4, outcome: OutcomeFinalTestRequired},
		{grades: []int{4, 5}, mean: 4.5, outcome: OutcomeNotPassing},
		{grades: []int{5, 5, 5, 5}, mean: 5, outcome: OutcomeNotPassing},
		{grades: []int{3, 3, 4}, mean: 10.0 / 3, outcome: OutcomeGoodStanding},
	}

	for _, test := range cases {
		c, err := Classify(test.grades)
		require.NoError(t, err)
		require.InDelta(t, test.mean, c.Mean, 1e-9, test.grades)
		require.Equal(t, test.outcome, c.Outcome, test.grades)
	}

	_, err := Classify(nil)
	require.ErrorIs(t, err, ErrNoGrades)
	_, err = Classify([]int{})
	require.ErrorIs(t, err, ErrNoGrades)
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "Current average: 3.00 - Good standing, no mandatory final test", Describe([]int{3, 3, 3, 3}))
	require.Equal(t, "Current average: 4.00 - Mandatory final test required", Describe([]int{4, 4, 4, 4}))
	require.Equal(t, "Current average: 5.00 - Currently not passing", Describe([]int{5, 5, 5, 5}))
	require.Equal(t, "Current average: 3.33 - Good standing, no mandatory final test", Describe([]int{3, 3, 4}))
	require.Equal(t, NoGradesResult, Describe(nil))
}

func TestReportMarkdown(t *testing.T) {
	rows := []Row{
		{"016", "5555"},
		{"017", "2334"},
	}
	row, ok := Locate(rows, "017")
	require.True(t, ok)

	report := NewReport("017", Extract(row))
	require.Equal(t, []int{2, 3, 3, 4}, report.Grades)

	expected := "# Grade Calculation for Student ID ending with 017\n" +
		"\n" +
		"## Raw Grades\n" +
		"[2, 3, 3, 4]\n" +
		"\n" +
		"## Result\n" +
		"Current average: 3.00 - Good standing, no mandatory final test\n"
	require.Equal(t, expected, report.Markdown())

	empty := NewReport("018", nil)
	require.Contains(t, empty.Markdown(), "[]\n")
	require.Contains(t, empty.Markdown(), NoGradesResult)
}
