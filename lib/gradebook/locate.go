package gradebook

import "strings"

// Locate returns the first row with a cell containing id.
//
// ids are only 3-digit suffixes, so two students can collide, in which
// case whoever comes first in the table wins.
func Locate(rows []Row, id string) (Row, bool) {
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.TrimSpace(cell), id) {
				return row, true
			}
		}
	}
	return nil, false
}
