package timetable

import "github.com/ituplan/planner-api/internal/models"

// SelectiveGroup is a "pick up to Required distinct courses" requirement.
// Each option is one course: the list of its candidate sections.
type SelectiveGroup struct {
	ID       string
	Name     string
	Required int
	Options  [][]models.Course
}

// groupResult carries the best achievable selection size for one group and
// the concrete section assignments realizing it.
type groupResult struct {
	variants [][]models.Course
	achieved int
}

// solveGroup maximizes the number of courses taken from the group against an
// accumulated base schedule. It walks k from Required down to zero; the first
// k with any conflict-free assignment wins, and up to variantCap assignments
// at that k are collected for variety. k = 0 (empty selection) always
// succeeds, so a group degrades rather than failing.
func solveGroup(base []models.Course, group SelectiveGroup, variantCap int, bud budget) groupResult {
	result := groupResult{achieved: -1}

	for k := group.Required; k >= 0; k-- {
		if k == 0 {
			if result.achieved == -1 {
				result.achieved = 0
				result.variants = append(result.variants, []models.Course{})
			}
			break
		}

		for _, combo := range combinations(len(group.Options), k) {
			if bud.exceeded() {
				break
			}
			slots := make([][]models.Course, len(combo))
			for i, optionIdx := range combo {
				slots[i] = group.Options[optionIdx]
			}

			found := findValidExtension(base, slots, variantCap-len(result.variants), bud)
			if len(found) == 0 {
				continue
			}
			if result.achieved == -1 {
				result.achieved = k
			}
			result.variants = append(result.variants, found...)
			if len(result.variants) >= variantCap {
				break
			}
		}

		if result.achieved != -1 {
			break
		}
	}

	return result
}

// findValidExtension picks one section per slot such that nothing conflicts
// with the base schedule or with the other picked sections, collecting at
// most maxResults assignments.
func findValidExtension(base []models.Course, slots [][]models.Course, maxResults int, bud budget) [][]models.Course {
	if maxResults <= 0 {
		return nil
	}
	results := make([][]models.Course, 0, maxResults)
	extension := make([]models.Course, 0, len(slots))

	var solve func(idx int)
	solve = func(idx int) {
		if len(results) >= maxResults || bud.exceeded() {
			return
		}
		if idx == len(slots) {
			chosen := make([]models.Course, len(extension))
			copy(chosen, extension)
			results = append(results, chosen)
			return
		}

		for _, section := range slots[idx] {
			if conflictsWithAny(section, base) || conflictsWithAny(section, extension) {
				continue
			}
			extension = append(extension, section)
			solve(idx + 1)
			extension = extension[:len(extension)-1]
		}
	}

	solve(0)
	return results
}

// combinations enumerates all k-element index subsets of [0, n) in
// lexicographic order.
func combinations(n, k int) [][]int {
	if k > n || k < 0 {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}

	var out [][]int
	combo := make([]int, 0, k)

	var backtrack func(start int)
	backtrack = func(start int) {
		if len(combo) == k {
			picked := make([]int, k)
			copy(picked, combo)
			out = append(out, picked)
			return
		}
		for i := start; i < n; i++ {
			combo = append(combo, i)
			backtrack(i + 1)
			combo = combo[:len(combo)-1]
		}
	}

	backtrack(0)
	return out
}
