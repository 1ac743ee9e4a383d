package results

import (
	"errors"
	"testing"

	"festrack/app/models"
)

const (
	studentAlice = "11111111-1111-1111-1111-111111111111"
	studentBasil = "22222222-2222-2222-2222-222222222222"
	studentChris = "33333333-3333-3333-3333-333333333333"
	teamRed      = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	teamBlue     = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	teamGreen    = "cccccccc-cccc-cccc-cccc-cccccccccccc"
)

func testStudents() map[string]*models.Student {
	return map[string]*models.Student{
		studentAlice: {ID: studentAlice, TeamID: teamRed},
		studentBasil: {ID: studentBasil, TeamID: teamBlue},
		studentChris: {ID: studentChris, TeamID: teamRed},
	}
}

func testTeams() map[string]*models.Team {
	return map[string]*models.Team{
		teamRed:   {ID: teamRed},
		teamBlue:  {ID: teamBlue},
		teamGreen: {ID: teamGreen},
	}
}

func threeWinners() []WinnerInput {
	return []WinnerInput{
		{Position: 1, CandidateID: studentAlice, Grade: models.GradeA},
		{Position: 2, CandidateID: studentBasil, Grade: models.GradeB},
		{Position: 3, CandidateID: studentChris, Grade: models.GradeC},
	}
}

func TestValidateWinners(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func([]WinnerInput) []WinnerInput
		wantErr bool
	}{
		{"valid submission", func(w []WinnerInput) []WinnerInput { return w }, false},
		{"two winners", func(w []WinnerInput) []WinnerInput { return w[:2] }, true},
		{"four winners", func(w []WinnerInput) []WinnerInput {
			return append(w, WinnerInput{Position: 1, CandidateID: teamGreen})
		}, true},
		{"duplicate position", func(w []WinnerInput) []WinnerInput {
			w[1].Position = 1
			return w
		}, true},
		{"position out of range", func(w []WinnerInput) []WinnerInput {
			w[2].Position = 4
			return w
		}, true},
		{"duplicate candidate", func(w []WinnerInput) []WinnerInput {
			w[2].CandidateID = w[0].CandidateID
			return w
		}, true},
		{"missing candidate", func(w []WinnerInput) []WinnerInput {
			w[0].CandidateID = ""
			return w
		}, true},
		{"bad grade", func(w []WinnerInput) []WinnerInput {
			w[0].Grade = "D"
			return w
		}, true},
		{"empty grade is allowed", func(w []WinnerInput) []WinnerInput {
			w[0].Grade = ""
			return w
		}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateWinners(tt.mutate(threeWinners()))
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildEntriesSingleSection(t *testing.T) {
	t.Parallel()

	program := &models.Program{Section: models.SectionSingle, Category: models.CategoryA}
	entries, err := buildEntries(program, threeWinners(), testStudents(), testTeams())
	if err != nil {
		t.Fatalf("buildEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	wantScores := []int{15, 10, 6}
	wantTeams := []string{teamRed, teamBlue, teamRed}
	for i, e := range entries {
		if e.StudentID == nil {
			t.Fatalf("entry %d has no student", i)
		}
		if e.TeamID != wantTeams[i] {
			t.Errorf("entry %d team = %s, want %s", i, e.TeamID, wantTeams[i])
		}
		if e.Score != wantScores[i] {
			t.Errorf("entry %d score = %d, want %d", i, e.Score, wantScores[i])
		}
	}
}

func TestBuildEntriesUnknownStudent(t *testing.T) {
	t.Parallel()

	program := &models.Program{Section: models.SectionSingle, Category: models.CategoryA}
	winners := threeWinners()
	winners[0].CandidateID = "44444444-4444-4444-4444-444444444444"

	_, err := buildEntries(program, winners, testStudents(), testTeams())
	if !errors.Is(err, ErrInvalidCandidate) {
		t.Errorf("expected ErrInvalidCandidate, got %v", err)
	}
}

func TestBuildEntriesGroupForcesNoGrade(t *testing.T) {
	t.Parallel()

	program := &models.Program{Section: models.SectionGroup, Category: models.CategoryNone}
	winners := []WinnerInput{
		{Position: 1, CandidateID: teamRed, Grade: models.GradeA},
		{Position: 2, CandidateID: teamBlue, Grade: models.GradeB},
		{Position: 3, CandidateID: teamGreen},
	}

	entries, err := buildEntries(program, winners, testStudents(), testTeams())
	if err != nil {
		t.Fatalf("buildEntries: %v", err)
	}

	wantScores := []int{20, 15, 10}
	for i, e := range entries {
		if e.StudentID != nil {
			t.Errorf("entry %d has a student id on a group result", i)
		}
		if e.Grade != models.GradeNone {
			t.Errorf("entry %d grade = %s, want none", i, e.Grade)
		}
		if e.Score != wantScores[i] {
			t.Errorf("entry %d score = %d, want %d", i, e.Score, wantScores[i])
		}
	}
}

func TestResolvePenalties(t *testing.T) {
	t.Parallel()

	penalties := []PenaltyInput{
		{CandidateID: studentAlice, Points: 5, Reason: "late entry"},
		{CandidateID: teamBlue, Points: 3, Reason: "prop violation"},
	}

	resolved, err := resolvePenalties(penalties, testStudents(), testTeams())
	if err != nil {
		t.Fatalf("resolvePenalties: %v", err)
	}

	// A student target lands on the student's owning team.
	if resolved[0].TeamID != teamRed {
		t.Errorf("student penalty team = %s, want %s", resolved[0].TeamID, teamRed)
	}
	if resolved[0].StudentID == nil || *resolved[0].StudentID != studentAlice {
		t.Errorf("student penalty should record the targeted student")
	}
	if resolved[1].TeamID != teamBlue {
		t.Errorf("team penalty team = %s, want %s", resolved[1].TeamID, teamBlue)
	}
	if resolved[1].StudentID != nil {
		t.Errorf("team penalty should not record a student")
	}
}

func TestResolvePenaltiesUnknownTarget(t *testing.T) {
	t.Parallel()

	penalties := []PenaltyInput{{CandidateID: "99999999-9999-9999-9999-999999999999", Points: 2}}
	_, err := resolvePenalties(penalties, testStudents(), testTeams())
	if !errors.Is(err, ErrInvalidPenaltyTarget) {
		t.Errorf("expected ErrInvalidPenaltyTarget, got %v", err)
	}
}

// ledger is an in-memory stand-in for the denormalized totals.
type ledger struct {
	students map[string]int
	teams    map[string]int
}

func newLedger() *ledger {
	return &ledger{students: make(map[string]int), teams: make(map[string]int)}
}

func (l *ledger) apply(deltas []pointsDelta) {
	for _, d := range deltas {
		if d.StudentID != nil {
			l.students[*d.StudentID] += d.Points
		}
		l.teams[d.TeamID] += d.Points
	}
}

func TestApproveAppliesDeltas(t *testing.T) {
	t.Parallel()

	program := &models.Program{Section: models.SectionSingle, Category: models.CategoryA}
	entries, err := buildEntries(program, threeWinners(), testStudents(), testTeams())
	if err != nil {
		t.Fatalf("buildEntries: %v", err)
	}
	penalties, err := resolvePenalties([]PenaltyInput{
		{CandidateID: studentBasil, Points: 10, Reason: "disqualification appeal"},
	}, testStudents(), testTeams())
	if err != nil {
		t.Fatalf("resolvePenalties: %v", err)
	}

	l := newLedger()
	l.apply(entryDeltas(entries, 1))
	l.apply(penaltyDeltas(penalties, 1))

	// Alice 15, Basil 10, Chris 6. The penalty never touches Basil's own total.
	if l.students[studentAlice] != 15 || l.students[studentBasil] != 10 || l.students[studentChris] != 6 {
		t.Errorf("student totals = %v", l.students)
	}
	// Red gets Alice + Chris (21), Blue gets Basil minus the 10 point penalty.
	if l.teams[teamRed] != 21 {
		t.Errorf("red team total = %d, want 21", l.teams[teamRed])
	}
	if l.teams[teamBlue] != 0 {
		t.Errorf("blue team total = %d, want 0", l.teams[teamBlue])
	}
}

func TestUndoReversesApply(t *testing.T) {
	t.Parallel()

	program := &models.Program{Section: models.SectionSingle, Category: models.CategoryB}
	entries, err := buildEntries(program, threeWinners(), testStudents(), testTeams())
	if err != nil {
		t.Fatalf("buildEntries: %v", err)
	}
	penalties, err := resolvePenalties([]PenaltyInput{
		{CandidateID: teamRed, Points: 4},
	}, testStudents(), testTeams())
	if err != nil {
		t.Fatalf("resolvePenalties: %v", err)
	}

	l := newLedger()
	l.apply(entryDeltas(entries, 1))
	l.apply(penaltyDeltas(penalties, 1))
	l.apply(entryDeltas(entries, -1))
	l.apply(penaltyDeltas(penalties, -1))

	for id, points := range l.students {
		if points != 0 {
			t.Errorf("student %s total = %d after undo, want 0", id, points)
		}
	}
	for id, points := range l.teams {
		if points != 0 {
			t.Errorf("team %s total = %d after undo, want 0", id, points)
		}
	}
}

func TestCandidateIDsDeduplicates(t *testing.T) {
	t.Parallel()

	winners := threeWinners()
	penalties := []PenaltyInput{
		{CandidateID: studentAlice, Points: 1},
		{CandidateID: teamGreen, Points: 2},
	}

	ids := candidateIDs(winners, penalties)
	if len(ids) != 4 {
		t.Fatalf("got %d ids, want 4: %v", len(ids), ids)
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
