package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ituplan/planner-api/internal/models"
)

func section(code, crn, days, times string) models.Course {
	return models.Course{
		Code:  code,
		CRN:   crn,
		Days:  days,
		Times: times,
	}
}

func TestConflictsOverlappingSessions(t *testing.T) {
	a := section("MAT 101", "10001", "Monday", "09:00/11:00")
	b := section("FIZ 101", "10002", "Monday", "10:00/12:00")

	assert.True(t, Conflicts(a, b))
	assert.True(t, Conflicts(b, a))
}

func TestConflictsBackToBackSessionsDoNotOverlap(t *testing.T) {
	a := section("MAT 101", "10001", "Monday", "09:00/10:00")
	b := section("FIZ 101", "10002", "Monday", "10:00/11:00")

	assert.False(t, Conflicts(a, b))
	assert.False(t, Conflicts(b, a))
}

func TestConflictsDifferentDays(t *testing.T) {
	a := section("MAT 101", "10001", "Monday", "09:00/11:00")
	b := section("FIZ 101", "10002", "Tuesday", "09:00/11:00")

	assert.False(t, Conflicts(a, b))
}

func TestConflictsUnparseableScheduleNeverConflicts(t *testing.T) {
	tba := section("MAT 101", "10001", "", "")
	busy := section("FIZ 101", "10002", "Monday,Tuesday,Wednesday,Thursday,Friday", "08:00/23:00")

	assert.False(t, Conflicts(tba, busy))
	assert.False(t, Conflicts(busy, tba))
	assert.False(t, Conflicts(tba, tba))
}

func TestConflictsMultiSessionSections(t *testing.T) {
	// Overlap only on the second meeting of each.
	a := section("MAT 101", "10001", "Monday,Wednesday", "09:00/11:00,14:00/16:00")
	b := section("FIZ 101", "10002", "Tuesday,Wednesday", "09:00/11:00,15:00/17:00")

	assert.True(t, Conflicts(a, b))
}

func TestConflictsSectionWithItself(t *testing.T) {
	a := section("MAT 101", "10001", "Monday", "09:00/11:00")

	assert.True(t, Conflicts(a, a))
}

func TestSessionOverlapsIsHalfOpen(t *testing.T) {
	base := Session{Day: Monday, Start: 600, End: 660}

	assert.True(t, base.Overlaps(Session{Day: Monday, Start: 659, End: 700}))
	assert.False(t, base.Overlaps(Session{Day: Monday, Start: 660, End: 700}))
	assert.False(t, base.Overlaps(Session{Day: Monday, Start: 540, End: 600}))
	assert.False(t, base.Overlaps(Session{Day: Tuesday, Start: 600, End: 660}))
}
