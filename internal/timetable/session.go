// Package timetable implements the schedule-generation engine: it parses the
// raw meeting strings of archived course sections, detects conflicts between
// sections and searches for conflict-free weekly schedules under soft user
// preferences. The package is pure: no I/O, no shared state, deterministic
// over its inputs.
package timetable

// Day enumerates weekdays. Monday through Friday are the schedulable days;
// Saturday and Sunday are preserved when the archive lists them.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return "Unknown"
	}
	return dayNames[d]
}

// dayAliases maps lowercase day spellings to Day values. The archive mixes
// English and Turkish names, including spellings without Turkish diacritics.
var dayAliases = map[string]Day{
	"monday": Monday, "mon": Monday, "pazartesi": Monday,
	"tuesday": Tuesday, "tue": Tuesday, "salı": Tuesday, "sali": Tuesday,
	"wednesday": Wednesday, "wed": Wednesday, "çarşamba": Wednesday, "carsamba": Wednesday,
	"thursday": Thursday, "thu": Thursday, "perşembe": Thursday, "persembe": Thursday,
	"friday": Friday, "fri": Friday, "cuma": Friday,
	"saturday": Saturday, "sat": Saturday, "cumartesi": Saturday,
	"sunday": Sunday, "sun": Sunday, "pazar": Sunday,
}

// Session is one weekly recurring meeting: a day plus start/end minutes from
// midnight. Sessions are derived from a section's raw strings and never
// stored.
type Session struct {
	Day   Day `json:"day"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether two sessions share a day and their half-open time
// intervals intersect. Touching boundaries (one ends when the other starts)
// do not overlap.
func (s Session) Overlaps(other Session) bool {
	return s.Day == other.Day && s.Start < other.End && other.Start < s.End
}
