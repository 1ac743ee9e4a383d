package results

import (
	"fmt"

	"festrack/app/models"
)

// Position base scores for single-section programs by category.
var singleBase = map[models.Category]map[int]int{
	models.CategoryA: {1: 10, 2: 7, 3: 5},
	models.CategoryB: {1: 7, 2: 5, 3: 3},
	models.CategoryC: {1: 5, 2: 3, 3: 1},
}

// Grade bonus applies to single-section entries only.
var gradeBonus = map[models.Grade]int{
	models.GradeA:    5,
	models.GradeB:    3,
	models.GradeC:    1,
	models.GradeNone: 0,
}

var groupScores = map[int]int{1: 20, 2: 15, 3: 10}

var generalScores = map[int]int{1: 25, 2: 20, 3: 15}

// CalculateScore returns the points awarded for a placement. All inputs are
// validated enums before reaching this function; an unknown value is a
// programming error and panics.
func CalculateScore(section models.Section, category models.Category, position int, grade models.Grade) int {
	if position < 1 || position > 3 {
		panic(fmt.Sprintf("results: invalid position %d", position))
	}

	switch section {
	case models.SectionSingle:
		base := 0
		if category != models.CategoryNone {
			table, ok := singleBase[category]
			if !ok {
				panic(fmt.Sprintf("results: invalid category %q", category))
			}
			base = table[position]
		}
		bonus, ok := gradeBonus[grade]
		if !ok {
			panic(fmt.Sprintf("results: invalid grade %q", grade))
		}
		return base + bonus
	case models.SectionGroup:
		return groupScores[position]
	case models.SectionGeneral:
		return generalScores[position]
	}
	panic(fmt.Sprintf("results: invalid section %q", section))
}
