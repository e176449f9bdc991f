package timetable

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ituplan/planner-api/internal/models"
)

func TestGenerateFullySatisfiedRequestScoresHundred(t *testing.T) {
	req := Request{
		Must: [][]models.Course{
			{section("MAT 101", "10001", "Monday", "09:00/11:00")},
			{section("FIZ 101", "20001", "Tuesday", "09:00/11:00")},
		},
	}

	ranked, stats := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	assert.Equal(t, 100.0, ranked[0].MatchPercent)
	assert.Len(t, ranked[0].Sections, 2)
	assert.Equal(t, len(ranked), stats.Returned)
}

func TestGenerateEmptyRequestYieldsEmptyScheduleAtHundred(t *testing.T) {
	ranked, _ := Generate(Request{}, Caps{})

	require.Len(t, ranked, 1)
	assert.Empty(t, ranked[0].Sections)
	assert.Equal(t, 100.0, ranked[0].MatchPercent)
}

func TestGenerateScoresPartialPlacementAgainstFullRequest(t *testing.T) {
	// Both courses meet in a single mutually conflicting section, so at most
	// one of two requested courses can be placed: 50%.
	req := Request{
		Must: [][]models.Course{
			{section("MAT 101", "10001", "Monday", "09:00/11:00")},
			{section("FIZ 101", "20001", "Monday", "10:00/12:00")},
		},
	}

	ranked, _ := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	assert.Equal(t, 50.0, ranked[0].MatchPercent)
	assert.Len(t, ranked[0].Sections, 1)
}

func TestGenerateGroupDegradesBelowRequired(t *testing.T) {
	// The group asks for two electives but one option clashes with the
	// required course, so only one fits: 2 of 3 requested places, 66.7%.
	base := section("MAT 101", "10001", "Monday", "09:00/11:00")
	clashing := section("ELE 201", "30001", "Monday", "10:00/12:00")
	free := section("ELE 202", "30002", "Wednesday", "09:00/11:00")

	req := Request{
		Must: [][]models.Course{{base}},
		Groups: []SelectiveGroup{{
			ID:       "core-electives",
			Name:     "Core Electives",
			Required: 2,
			Options:  [][]models.Course{{clashing}, {free}},
		}},
	}

	ranked, _ := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	assert.Equal(t, 66.7, ranked[0].MatchPercent)

	crns := make([]string, 0, len(ranked[0].Sections))
	for _, s := range ranked[0].Sections {
		crns = append(crns, s.CRN)
	}
	assert.ElementsMatch(t, []string{"10001", "30002"}, crns)
}

func TestGenerateLaterGroupSeesEarlierGroupChoices(t *testing.T) {
	// Group two's only option clashes with group one's only option. The
	// second group must degrade to zero instead of producing a conflicting
	// schedule.
	first := section("ELE 201", "30001", "Monday", "09:00/11:00")
	second := section("ELE 301", "40001", "Monday", "10:00/12:00")

	req := Request{
		Groups: []SelectiveGroup{
			{ID: "g1", Required: 1, Options: [][]models.Course{{first}}},
			{ID: "g2", Required: 1, Options: [][]models.Course{{second}}},
		},
	}

	ranked, _ := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	for _, schedule := range ranked {
		for i := range schedule.Sections {
			for j := i + 1; j < len(schedule.Sections); j++ {
				assert.False(t, Conflicts(schedule.Sections[i], schedule.Sections[j]))
			}
		}
	}
	assert.Equal(t, 50.0, ranked[0].MatchPercent)
}

func TestGenerateFreeDayPenalty(t *testing.T) {
	req := Request{
		Must: [][]models.Course{
			{section("MAT 101", "10001", "Monday", "13:00/15:00")},
		},
		Prefs: Preferences{FreeDays: []Day{Monday, Friday}},
	}

	ranked, _ := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	assert.Equal(t, 95.0, ranked[0].MatchPercent)
}

func TestGenerateMorningPenaltyAppliedOnce(t *testing.T) {
	req := Request{
		Must: [][]models.Course{
			{section("MAT 101", "10001", "Monday", "09:00/11:00")},
			{section("FIZ 101", "20001", "Tuesday", "08:30/10:00")},
		},
		Prefs: Preferences{NoMorning: true},
	}

	ranked, _ := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	assert.Equal(t, 95.0, ranked[0].MatchPercent)
}

func TestGenerateScoreNeverNegative(t *testing.T) {
	// A single placeable course out of many requested plus every penalty
	// would go below zero without the floor.
	slots := [][]models.Course{
		{section("MAT 101", "10001", "Monday", "08:00/09:00")},
	}
	for i := 0; i < 30; i++ {
		crn := fmt.Sprintf("9%04d", i)
		slots = append(slots, []models.Course{section("XXX 999", crn, "Monday", "08:00/09:00")})
	}

	req := Request{
		Must: slots,
		Prefs: Preferences{
			NoMorning: true,
			FreeDays:  []Day{Monday},
		},
	}

	ranked, _ := Generate(req, Caps{})
	for _, schedule := range ranked {
		assert.GreaterOrEqual(t, schedule.MatchPercent, 0.0)
	}
}

func TestGenerateResultsSortedAndDeduplicated(t *testing.T) {
	matA := section("MAT 101", "10001", "Monday", "09:00/11:00")
	matB := section("MAT 101", "10002", "Tuesday", "09:00/11:00")
	fiz := section("FIZ 101", "20001", "Wednesday", "09:00/11:00")

	req := Request{
		Must: [][]models.Course{{matA, matB}, {fiz}},
	}

	ranked, _ := Generate(req, Caps{})

	seen := make(map[string]bool)
	for i, schedule := range ranked {
		if i > 0 {
			assert.LessOrEqual(t, schedule.MatchPercent, ranked[i-1].MatchPercent)
		}
		sig := crnSignature(schedule.Sections)
		assert.False(t, seen[sig], "duplicate schedule %s", sig)
		seen[sig] = true
	}
}

func TestGenerateSchedulesAreConflictFreeWithDistinctCodes(t *testing.T) {
	req := Request{
		Must: [][]models.Course{
			{
				section("MAT 101", "10001", "Monday", "09:00/11:00"),
				section("MAT 101", "10002", "Tuesday", "09:00/11:00"),
			},
			{
				section("FIZ 101", "20001", "Monday", "10:00/12:00"),
				section("FIZ 101", "20002", "Wednesday", "09:00/11:00"),
			},
		},
		Groups: []SelectiveGroup{{
			ID:       "g1",
			Required: 1,
			Options: [][]models.Course{
				{section("ELE 201", "30001", "Monday", "09:30/10:30")},
				{section("ELE 202", "30002", "Friday", "09:00/11:00")},
			},
		}},
	}

	ranked, _ := Generate(req, Caps{})

	require.NotEmpty(t, ranked)
	for _, schedule := range ranked {
		codes := make(map[string]bool)
		for i, a := range schedule.Sections {
			assert.False(t, codes[a.Code], "code %s placed twice", a.Code)
			codes[a.Code] = true
			for j := i + 1; j < len(schedule.Sections); j++ {
				assert.False(t, Conflicts(a, schedule.Sections[j]))
			}
		}
	}
}

func TestGenerateCapsReturnedSchedules(t *testing.T) {
	// Two slots with four disjoint sections each produce more than three
	// distinct subsets.
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday"}
	slots := make([][]models.Course, 2)
	for slot := range slots {
		for i, day := range days {
			crn := fmt.Sprintf("%d%d001", slot, i)
			times := fmt.Sprintf("%02d:00/%02d:00", 9+3*slot, 11+3*slot)
			slots[slot] = append(slots[slot], section(fmt.Sprintf("MAT 10%d", slot), crn, day, times))
		}
	}

	ranked, stats := Generate(Request{Must: slots}, Caps{MaxSchedules: 3})

	assert.Len(t, ranked, 3)
	assert.Equal(t, 3, stats.Returned)
	assert.GreaterOrEqual(t, stats.Candidates, 3)
}

func TestGenerateExpiredDeadlineReturnsNothing(t *testing.T) {
	req := Request{
		Must: [][]models.Course{
			{section("MAT 101", "10001", "Monday", "09:00/11:00")},
		},
	}

	ranked, stats := Generate(req, Caps{Deadline: time.Now().Add(-time.Second)})

	assert.Empty(t, ranked)
	assert.Equal(t, 0, stats.MustBases)
}

func TestSolveGroupAchievedNeverDecreasesWithMoreOptions(t *testing.T) {
	base := []models.Course{section("MAT 101", "10001", "Monday", "09:00/11:00")}
	narrow := SelectiveGroup{
		Required: 2,
		Options: [][]models.Course{
			{section("ELE 201", "30001", "Monday", "10:00/12:00")},
		},
	}
	wide := SelectiveGroup{
		Required: 2,
		Options: [][]models.Course{
			{section("ELE 201", "30001", "Monday", "10:00/12:00")},
			{section("ELE 202", "30002", "Friday", "09:00/11:00")},
		},
	}

	narrowResult := solveGroup(base, narrow, DefaultMaxGroupVariants, budget{})
	wideResult := solveGroup(base, wide, DefaultMaxGroupVariants, budget{})

	assert.Equal(t, 0, narrowResult.achieved)
	assert.Equal(t, 1, wideResult.achieved)
	assert.GreaterOrEqual(t, wideResult.achieved, narrowResult.achieved)
}

func TestSolveGroupAchievedMonotonicInRequired(t *testing.T) {
	base := []models.Course{section("MAT 101", "10001", "Monday", "09:00/11:00")}
	options := [][]models.Course{
		{section("ELE 201", "30001", "Monday", "10:00/12:00")},
		{section("ELE 202", "30002", "Friday", "09:00/11:00")},
		{section("ELE 203", "30003", "Friday", "10:00/12:00")},
		{section("ELE 204", "30004", "Tuesday", "09:00/11:00")},
	}

	// Against the base, at most ELE 202 and ELE 204 fit together: ELE 201
	// clashes with the base and ELE 203 clashes with ELE 202.
	prev := 0
	for required := 1; required <= len(options); required++ {
		group := SelectiveGroup{Required: required, Options: options}
		result := solveGroup(base, group, DefaultMaxGroupVariants, budget{})
		assert.GreaterOrEqual(t, result.achieved, prev, "required=%d", required)
		prev = result.achieved
	}
	assert.Equal(t, 2, prev)
}

func TestSolveGroupZeroRequiredSucceedsImmediately(t *testing.T) {
	result := solveGroup(nil, SelectiveGroup{Required: 0}, DefaultMaxGroupVariants, budget{})

	assert.Equal(t, 0, result.achieved)
	require.Len(t, result.variants, 1)
	assert.Empty(t, result.variants[0])
}
