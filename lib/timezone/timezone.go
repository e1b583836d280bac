package timezone

import (
	"time"
	_ "time/tzdata"
)

// Location is where the points page is published (Salzburg).
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Vienna")
	if err != nil {
		panic(err)
	}
}

// Now is the current time in Location.
func Now() time.Time {
	return time.Now().In(Location)
}

// Format renders t in Location for display in tables.
func Format(t time.Time) string {
	return t.In(Location).Format("2006-01-02 15:04")
}
