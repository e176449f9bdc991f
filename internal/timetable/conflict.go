package timetable

import "github.com/ituplan/planner-api/internal/models"

// Sessions derives the weekly sessions of a section from its raw schedule
// strings. Deterministic and idempotent: identical raw strings always yield
// identical sessions.
func Sessions(course models.Course) []Session {
	return ParseMeetings(course.Times, course.Days)
}

// Conflicts reports whether any session of a overlaps any session of b.
// Symmetric. A section with no parseable sessions (TBA) never conflicts.
// Called with the same section twice it returns true whenever the section
// has at least one session; the solvers never pair a section with itself.
func Conflicts(a, b models.Course) bool {
	sessionsA := Sessions(a)
	if len(sessionsA) == 0 {
		return false
	}
	sessionsB := Sessions(b)

	for _, sa := range sessionsA {
		for _, sb := range sessionsB {
			if sa.Overlaps(sb) {
				return true
			}
		}
	}
	return false
}

// conflictsWithAny reports whether the section overlaps any already-chosen
// section.
func conflictsWithAny(section models.Course, chosen []models.Course) bool {
	for _, existing := range chosen {
		if Conflicts(section, existing) {
			return true
		}
	}
	return false
}
