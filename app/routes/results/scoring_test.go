package results

import (
	"testing"

	"festrack/app/models"
)

func TestCalculateScoreSingle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category models.Category
		position int
		grade    models.Grade
		want     int
	}{
		{"first place A category A grade", models.CategoryA, 1, models.GradeA, 15},
		{"first place A category no grade", models.CategoryA, 1, models.GradeNone, 10},
		{"second place A category B grade", models.CategoryA, 2, models.GradeB, 10},
		{"third place A category C grade", models.CategoryA, 3, models.GradeC, 6},
		{"first place B category", models.CategoryB, 1, models.GradeNone, 7},
		{"second place B category A grade", models.CategoryB, 2, models.GradeA, 10},
		{"third place C category", models.CategoryC, 3, models.GradeNone, 1},
		{"uncategorized program scores grade only", models.CategoryNone, 1, models.GradeA, 5},
		{"uncategorized no grade scores zero", models.CategoryNone, 1, models.GradeNone, 0},
		{"uncategorized third place B grade", models.CategoryNone, 3, models.GradeB, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CalculateScore(models.SectionSingle, tt.category, tt.position, tt.grade)
			if got != tt.want {
				t.Errorf("CalculateScore(single, %s, %d, %s) = %d, want %d",
					tt.category, tt.position, tt.grade, got, tt.want)
			}
		})
	}
}

func TestCalculateScoreGroup(t *testing.T) {
	t.Parallel()

	want := map[int]int{1: 20, 2: 15, 3: 10}
	for position, expected := range want {
		got := CalculateScore(models.SectionGroup, models.CategoryNone, position, models.GradeNone)
		if got != expected {
			t.Errorf("group position %d = %d, want %d", position, got, expected)
		}
	}

	// Category must not affect group scoring
	if got := CalculateScore(models.SectionGroup, models.CategoryA, 1, models.GradeNone); got != 20 {
		t.Errorf("group with category A = %d, want 20", got)
	}
}

func TestCalculateScoreGeneral(t *testing.T) {
	t.Parallel()

	want := map[int]int{1: 25, 2: 20, 3: 15}
	for position, expected := range want {
		got := CalculateScore(models.SectionGeneral, models.CategoryNone, position, models.GradeNone)
		if got != expected {
			t.Errorf("general position %d = %d, want %d", position, got, expected)
		}
	}
}

func TestCalculateScorePanicsOnBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		section  models.Section
		category models.Category
		position int
		grade    models.Grade
	}{
		{"position zero", models.SectionSingle, models.CategoryA, 0, models.GradeA},
		{"position four", models.SectionGroup, models.CategoryNone, 4, models.GradeNone},
		{"unknown section", models.Section("solo"), models.CategoryA, 1, models.GradeA},
		{"unknown grade", models.SectionSingle, models.CategoryA, 1, models.Grade("D")},
		{"unknown category", models.SectionSingle, models.Category("X"), 1, models.GradeA},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %s", tt.name)
				}
			}()
			CalculateScore(tt.section, tt.category, tt.position, tt.grade)
		})
	}
}
