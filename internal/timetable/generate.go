package timetable

import (
	"math"
	"sort"

	"github.com/ituplan/planner-api/internal/models"
)

// morningCutoff marks the "no morning classes" threshold: sessions starting
// before 10:30 count as morning sessions.
const morningCutoff = 10*60 + 30

// Preferences are soft constraints applied at scoring time only; they never
// filter schedules out.
type Preferences struct {
	FreeDays  []Day
	NoMorning bool
}

// freeDayPenalty and morningPenalty are subtracted from the match percentage
// per violated preference.
const (
	freeDayPenalty = 5.0
	morningPenalty = 5.0
)

// Request describes one generation run: required courses (one slot per
// course, each slot listing its candidate sections), elective groups in the
// order the user defined them, and soft preferences.
type Request struct {
	Must   [][]models.Course
	Groups []SelectiveGroup
	Prefs  Preferences
}

// RankedSchedule is one conflict-free candidate schedule with its score: the
// percentage of requested courses actually placed, minus soft-constraint
// penalties, floored at zero and rounded to one decimal.
type RankedSchedule struct {
	Sections     []models.Course `json:"sections"`
	MatchPercent float64         `json:"match_percent"`
}

// Stats summarises a generation run for logging and response metadata.
type Stats struct {
	MustBases  int `json:"must_bases"`
	Candidates int `json:"candidates"`
	Returned   int `json:"returned"`
}

// candidate is an assembled schedule before scoring.
type candidate struct {
	sections  []models.Course
	mustCount int
	electives int
}

// Generate runs the full pipeline: must-set solving, per-base elective group
// resolution (groups are threaded in order, each seeing the previous groups'
// choices), Cartesian expansion of group variants, scoring, deduplication
// and ranking. An infeasible request yields an empty list, not an error.
func Generate(req Request, caps Caps) ([]RankedSchedule, Stats) {
	caps = caps.withDefaults()
	bud := budget{deadline: caps.Deadline}

	totalRequested := len(req.Must)
	for _, group := range req.Groups {
		totalRequested += group.Required
	}

	bases := pruneMustSolutions(solveMust(req.Must, caps.MaxMustSolutions, bud), caps.MaxMustBases)

	candidates := make([]candidate, 0)
	for _, base := range bases {
		expandGroups(base, req.Groups, caps, bud, &candidates)
	}

	ranked := make([]RankedSchedule, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, cand := range candidates {
		sig := crnSignature(cand.sections)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		ranked = append(ranked, RankedSchedule{
			Sections:     cand.sections,
			MatchPercent: score(cand, totalRequested, req.Prefs),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercent > ranked[j].MatchPercent
	})

	stats := Stats{MustBases: len(bases), Candidates: len(ranked)}
	if len(ranked) > caps.MaxSchedules {
		ranked = ranked[:caps.MaxSchedules]
	}
	stats.Returned = len(ranked)
	return ranked, stats
}

// expandGroups resolves the elective groups in user order on top of one must
// base, emitting a candidate per combination of group variants.
func expandGroups(base mustSolution, groups []SelectiveGroup, caps Caps, bud budget, out *[]candidate) {
	var recurse func(idx int, schedule []models.Course, electives int)
	recurse = func(idx int, schedule []models.Course, electives int) {
		if idx == len(groups) {
			chosen := make([]models.Course, len(schedule))
			copy(chosen, schedule)
			*out = append(*out, candidate{sections: chosen, mustCount: base.count, electives: electives})
			return
		}

		result := solveGroup(schedule, groups[idx], caps.MaxGroupVariants, bud)
		for _, variant := range result.variants {
			recurse(idx+1, append(schedule[:len(schedule):len(schedule)], variant...), electives+result.achieved)
		}
	}

	recurse(0, base.sections, 0)
}

// score computes the match percentage against the originally requested
// totals: partial placements are penalized relative to the full request even
// when nothing better was achievable. Zero requested courses score 100.
func score(cand candidate, totalRequested int, prefs Preferences) float64 {
	base := 100.0
	if totalRequested > 0 {
		base = float64(cand.mustCount+cand.electives) / float64(totalRequested) * 100
	}

	base -= penalties(cand.sections, prefs)
	if base < 0 {
		return 0
	}
	return math.Round(base*10) / 10
}

func penalties(sections []models.Course, prefs Preferences) float64 {
	total := 0.0

	if len(prefs.FreeDays) > 0 {
		occupied := make(map[Day]bool)
		for _, section := range sections {
			for _, session := range Sessions(section) {
				occupied[session.Day] = true
			}
		}
		for _, day := range prefs.FreeDays {
			if occupied[day] {
				total += freeDayPenalty
			}
		}
	}

	if prefs.NoMorning {
		for _, section := range sections {
			if hasMorningSession(section) {
				total += morningPenalty
				break
			}
		}
	}

	return total
}

func hasMorningSession(section models.Course) bool {
	for _, session := range Sessions(section) {
		if session.Start < morningCutoff {
			return true
		}
	}
	return false
}
