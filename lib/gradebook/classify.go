package gradebook

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

type Outcome int

const (
	OutcomeGoodStanding Outcome = iota
	OutcomeFinalTestRequired
	OutcomeNotPassing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGoodStanding:
		return "Good standing, no mandatory final test"
	case OutcomeFinalTestRequired:
		return "Mandatory final test required"
	case OutcomeNotPassing:
		return "Currently not passing"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// upper bounds (exclusive) of the first two bands
const (
	goodStandingBelow = 3.5
	finalTestBelow    = 4.5
)

// NoGradesResult is what gets reported in place of an average when a row
// has no readable grades.
const NoGradesResult = "No grades found"

type Classification struct {
	Mean    float64
	Outcome Outcome
}

func (c Classification) String() string {
	return fmt.Sprintf("Current average: %.2f - %s", c.Mean, c.Outcome)
}

func OutcomeOf(mean float64) Outcome {
	if mean < goodStandingBelow {
		return OutcomeGoodStanding
	}
	if mean < finalTestBelow {
		return OutcomeFinalTestRequired
	}
	return OutcomeNotPassing
}

func Classify(grades []int) (Classification, error) {
	if len(grades) == 0 {
		return Classification{}, ErrNoGrades
	}
	mean, err := stats.Mean(stats.LoadRawData(grades))
	if err != nil {
		return Classification{}, err
	}
	return Classification{
		Mean:    mean,
		Outcome: OutcomeOf(mean),
	}, nil
}

// Describe returns the result line for grades, or NoGradesResult.
func Describe(grades []int) string {
	c, err := Classify(grades)
	if err != nil {
		return NoGradesResult
	}
	return c.String()
}
