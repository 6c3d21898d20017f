// Package dateutil pins all calendar math to a single reference timezone
// so that due dates, overdue checks, and streaks agree for users whose
// host machine is set to a different zone.
package dateutil

import (
	"fmt"
	"regexp"
	"time"
	// The binary must work on hosts without a system zone database.
	_ "time/tzdata"
)

// ReferenceTZ is the fixed zone every day key is derived in.
const ReferenceTZ = "America/Los_Angeles"

// MaxKey sorts after every real day key; used as the sentinel for tasks
// without a due date.
const MaxKey = "9999-99-99"

const keyLayout = "2006-01-02"

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var refLoc = func() *time.Location {
	loc, err := time.LoadLocation(ReferenceTZ)
	if err != nil {
		panic(fmt.Sprintf("dateutil: load %s: %v", ReferenceTZ, err))
	}
	return loc
}()

// DayKey formats the calendar date of a millisecond epoch instant, as
// observed in the reference zone, into YYYY-MM-DD.
func DayKey(ms int64) string {
	return time.UnixMilli(ms).In(refLoc).Format(keyLayout)
}

// TodayKey returns the day key of the current instant.
func TodayKey() string {
	return DayKey(time.Now().UnixMilli())
}

// IsValidKey reports whether s is syntactically a day key. The check is
// shape-only: it does not reject impossible month or day numbers, so
// stored data from older versions keeps loading.
func IsValidKey(s string) bool {
	return keyPattern.MatchString(s)
}

// PrevKey returns the key of the calendar day before key. It builds a
// UTC instant for the key's date, steps back one day, then re-derives
// the key through the reference zone so the result always agrees with
// DayKey. The instant sits at midday UTC: the reference zone is hours
// behind UTC, so a midnight instant would already read as the prior
// evening there and the subtraction would land a day too far back.
// Returns "" when key is not a valid day key.
func PrevKey(key string) string {
	y, m, d, ok := splitKey(key)
	if !ok {
		return ""
	}
	midday := time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC)
	return DayKey(midday.AddDate(0, 0, -1).UnixMilli())
}

// Humanize renders a day key for display, e.g. "Jan 5". The comparison
// instant is built at midday UTC so the reference-zone offset cannot
// flip it across a date boundary. Returns "" for invalid keys.
func Humanize(key string) string {
	y, m, d, ok := splitKey(key)
	if !ok {
		return ""
	}
	midday := time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC)
	return midday.In(refLoc).Format("Jan 2")
}

func splitKey(key string) (y, m, d int, ok bool) {
	if !IsValidKey(key) {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(key, "%4d-%2d-%2d", &y, &m, &d); err != nil {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
