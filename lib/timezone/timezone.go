package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

const DateLayout = "2006-01-02"

// the puzzle rolls over on New York time, a machine elsewhere would
// otherwise file the puzzle under the wrong day around midnight.
func Now() time.Time {
	return time.Now().In(Location)
}

// PuzzleDate formats the day a given instant belongs to, in New York.
func PuzzleDate(t time.Time) string {
	return t.In(Location).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date as midnight in New York.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location)
}
