package timetable

import (
	"sort"
	"strings"
	"time"

	"github.com/ituplan/planner-api/internal/models"
)

// Default structural caps. Branching is bounded by counts, not correctness:
// reaching a cap silently truncates further exploration and the result set
// may be incomplete.
const (
	DefaultMaxMustSolutions = 200
	DefaultMaxMustBases     = 50
	DefaultMaxGroupVariants = 20
	DefaultMaxSchedules     = 100

	// retentionWindow keeps near-optimal must solutions: anything within
	// this many satisfied courses of the best observed count survives
	// pruning, so callers still see 5/6 variants next to a 6/6 result.
	retentionWindow = 2
)

// Caps bounds the search. Zero fields fall back to the defaults above. The
// optional Deadline is a wall-clock budget checked inside the recursive
// solvers; past it, exploration stops and whatever was found is returned.
type Caps struct {
	MaxMustSolutions int
	MaxMustBases     int
	MaxGroupVariants int
	MaxSchedules     int
	Deadline         time.Time
}

func (c Caps) withDefaults() Caps {
	if c.MaxMustSolutions <= 0 {
		c.MaxMustSolutions = DefaultMaxMustSolutions
	}
	if c.MaxMustBases <= 0 {
		c.MaxMustBases = DefaultMaxMustBases
	}
	if c.MaxGroupVariants <= 0 {
		c.MaxGroupVariants = DefaultMaxGroupVariants
	}
	if c.MaxSchedules <= 0 {
		c.MaxSchedules = DefaultMaxSchedules
	}
	return c
}

// budget threads the deadline through recursion, replacing global early-exit
// flags with an explicit parameter.
type budget struct {
	deadline time.Time
}

func (b budget) exceeded() bool {
	return !b.deadline.IsZero() && time.Now().After(b.deadline)
}

// mustSolution is one candidate assignment over the required course slots.
type mustSolution struct {
	sections []models.Course
	count    int
}

// solveMust explores the required slots depth-first. At every slot it
// branches into choosing each conflict-free section and, unconditionally,
// into skipping the slot: the skip branch surfaces valid subsets even when a
// full assignment exists, so near-complete alternatives are available for
// scoring. With zero slots it yields the single empty solution.
func solveMust(slots [][]models.Course, maxSolutions int, bud budget) []mustSolution {
	solutions := make([]mustSolution, 0)
	current := make([]models.Course, 0, len(slots))

	var explore func(idx int)
	explore = func(idx int) {
		if len(solutions) >= maxSolutions || bud.exceeded() {
			return
		}
		if idx == len(slots) {
			chosen := make([]models.Course, len(current))
			copy(chosen, current)
			solutions = append(solutions, mustSolution{sections: chosen, count: len(chosen)})
			return
		}

		for _, section := range slots[idx] {
			if len(solutions) >= maxSolutions || bud.exceeded() {
				return
			}
			if conflictsWithAny(section, current) {
				continue
			}
			current = append(current, section)
			explore(idx + 1)
			current = current[:len(current)-1]
		}

		// Skip branch.
		explore(idx + 1)
	}

	explore(0)
	return solutions
}

// pruneMustSolutions orders candidates by satisfied count, keeps the tier
// within retentionWindow of the best, drops duplicates by CRN signature and
// caps the fan-out carried into the elective phase.
func pruneMustSolutions(solutions []mustSolution, maxBases int) []mustSolution {
	if len(solutions) == 0 {
		return solutions
	}

	sort.SliceStable(solutions, func(i, j int) bool {
		return solutions[i].count > solutions[j].count
	})

	best := solutions[0].count
	kept := solutions[:0]
	seen := make(map[string]struct{}, len(solutions))
	for _, sol := range solutions {
		if sol.count < best-retentionWindow {
			break
		}
		sig := crnSignature(sol.sections)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		kept = append(kept, sol)
		if len(kept) >= maxBases {
			break
		}
	}
	return kept
}

// crnSignature identifies a set of sections independent of choice order.
func crnSignature(sections []models.Course) string {
	crns := make([]string, len(sections))
	for i, section := range sections {
		crns[i] = section.CRN
	}
	sort.Strings(crns)
	return strings.Join(crns, "|")
}
