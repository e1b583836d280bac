package gradebook

import (
	"regexp"
	"strings"
)

var (
	compactRegex = regexp.MustCompile(`^[1-5]{4,5}$`)
	barredRegex  = regexp.MustCompile(`^[1-5|]+$`)
)

// Extract collects the grades of every cell after the first one (which holds
// the id). Two encodings are understood:
//
//	2334    4 to 5 grades written next to each other
//	23|41   groups of grades separated by bars
//
// Cells in any other shape are skipped.
func Extract(row Row) []int {
	if len(row) == 0 {
		return nil
	}

	var grades []int
	for _, cell := range row[1:] {
		text := strings.TrimSpace(cell)

		switch {
		case compactRegex.MatchString(text):
			grades = appendDigits(grades, text)
		case strings.Contains(text, "|") && barredRegex.MatchString(text):
			for _, part := range strings.Split(text, "|") {
				grades = appendDigits(grades, part)
			}
		}
	}
	return grades
}

// s must only contain the digits 1-5.
func appendDigits(out []int, s string) []int {
	for _, c := range s {
		out = append(out, int(c-'0'))
	}
	return out
}
