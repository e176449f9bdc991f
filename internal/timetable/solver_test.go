package timetable

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ituplan/planner-api/internal/models"
)

func TestSolveMustKeepsPartialAssignmentsWhenSlotsClash(t *testing.T) {
	// Every section of MAT 101 clashes with the single FIZ 101 section, so no
	// full assignment exists. The skip branch must still surface the
	// single-course subsets.
	matA := section("MAT 101", "10001", "Monday", "09:00/11:00")
	matB := section("MAT 101", "10002", "Monday", "10:00/12:00")
	fiz := section("FIZ 101", "20001", "Monday", "09:30/11:30")

	slots := [][]models.Course{{matA, matB}, {fiz}}
	solutions := solveMust(slots, DefaultMaxMustSolutions, budget{})

	best := 0
	signatures := make(map[string]bool)
	for _, sol := range solutions {
		if sol.count > best {
			best = sol.count
		}
		signatures[crnSignature(sol.sections)] = true
	}

	assert.Equal(t, 1, best)
	assert.True(t, signatures["10001"])
	assert.True(t, signatures["10002"])
	assert.True(t, signatures["20001"])
	assert.False(t, signatures["10001|20001"])
	assert.False(t, signatures["10002|20001"])
}

func TestSolveMustZeroSlotsYieldsEmptySolution(t *testing.T) {
	solutions := solveMust(nil, DefaultMaxMustSolutions, budget{})

	require.Len(t, solutions, 1)
	assert.Empty(t, solutions[0].sections)
	assert.Equal(t, 0, solutions[0].count)
}

func TestSolveMustHonorsSolutionCap(t *testing.T) {
	// Three slots with three pairwise disjoint sections each explode
	// combinatorially; the cap must bound the result.
	slots := make([][]models.Course, 3)
	for slot := range slots {
		for i := 0; i < 3; i++ {
			day := []string{"Monday", "Tuesday", "Wednesday"}[i]
			crn := fmt.Sprintf("%d%d001", slot, i)
			code := fmt.Sprintf("MAT 10%d", slot)
			start := fmt.Sprintf("%02d:00/%02d:00", 9+2*slot, 10+2*slot)
			slots[slot] = append(slots[slot], section(code, crn, day, start))
		}
	}

	solutions := solveMust(slots, 5, budget{})
	assert.Len(t, solutions, 5)
}

func TestSolveMustStopsAtDeadline(t *testing.T) {
	slots := [][]models.Course{
		{section("MAT 101", "10001", "Monday", "09:00/11:00")},
		{section("FIZ 101", "20001", "Tuesday", "09:00/11:00")},
	}

	expired := budget{deadline: time.Now().Add(-time.Second)}
	assert.Empty(t, solveMust(slots, DefaultMaxMustSolutions, expired))
}

func TestPruneMustSolutionsRetainsNearOptimalTier(t *testing.T) {
	solutions := []mustSolution{
		{sections: []models.Course{section("A", "1", "", "")}, count: 1},
		{sections: []models.Course{
			section("A", "1", "", ""),
			section("B", "2", "", ""),
			section("C", "3", "", ""),
			section("D", "4", "", ""),
		}, count: 4},
		{sections: []models.Course{section("A", "1", "", ""), section("B", "2", "", "")}, count: 2},
		{sections: nil, count: 0},
	}

	kept := pruneMustSolutions(solutions, DefaultMaxMustBases)

	require.Len(t, kept, 2)
	assert.Equal(t, 4, kept[0].count)
	assert.Equal(t, 2, kept[1].count)
}

func TestPruneMustSolutionsDeduplicatesBySectionSet(t *testing.T) {
	a := section("MAT 101", "10001", "", "")
	b := section("FIZ 101", "20001", "", "")
	solutions := []mustSolution{
		{sections: []models.Course{a, b}, count: 2},
		{sections: []models.Course{b, a}, count: 2},
	}

	kept := pruneMustSolutions(solutions, DefaultMaxMustBases)
	assert.Len(t, kept, 1)
}

func TestPruneMustSolutionsCapsBases(t *testing.T) {
	solutions := make([]mustSolution, 0, 10)
	for i := 0; i < 10; i++ {
		crn := fmt.Sprintf("%05d", i)
		solutions = append(solutions, mustSolution{
			sections: []models.Course{section("MAT 101", crn, "", "")},
			count:    1,
		})
	}

	kept := pruneMustSolutions(solutions, 3)
	assert.Len(t, kept, 3)
}

func TestCrnSignatureIsOrderIndependent(t *testing.T) {
	a := section("MAT 101", "10001", "", "")
	b := section("FIZ 101", "20001", "", "")

	assert.Equal(t, crnSignature([]models.Course{a, b}), crnSignature([]models.Course{b, a}))
	assert.Equal(t, "", crnSignature(nil))
}
