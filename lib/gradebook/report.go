package gradebook

import (
	"fmt"
	"strconv"
	"strings"
)

type Report struct {
	Identifier string
	Grades     []int
	Result     string
}

func NewReport(id string, grades []int) Report {
	return Report{
		Identifier: id,
		Grades:     grades,
		Result:     Describe(grades),
	}
}

// FormatGrades renders grades as a bracketed list, "[2, 3, 3, 4]".
func FormatGrades(grades []int) string {
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = strconv.Itoa(g)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (r Report) Markdown() string {
	var out strings.Builder
	fmt.Fprintf(&out, "# Grade Calculation for Student ID ending with %s\n\n", r.Identifier)
	out.WriteString("## Raw Grades\n")
	fmt.Fprintf(&out, "%s\n\n", FormatGrades(r.Grades))
	out.WriteString("## Result\n")
	fmt.Fprintf(&out, "%s\n", r.Result)
	return out.String()
}
