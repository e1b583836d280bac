// Package gradebook locates a student's row in the points table, pulls the
// digit grades out of its cells and classifies their average.
package gradebook

import (
	"errors"
	"regexp"
)

// Row is one table row, a list of cell texts in document order.
type Row []string

var (
	ErrInvalidIdentifier = errors.New("STUDENT_ID must be a 3-digit number")
	ErrNotFound          = errors.New("no data found")
	ErrNoGrades          = errors.New("no grades found")
)

var identifierRegex = regexp.MustCompile(`^[0-9]{3}$`)

func ValidateIdentifier(id string) error {
	if !identifierRegex.MatchString(id) {
		return ErrInvalidIdentifier
	}
	return nil
}
