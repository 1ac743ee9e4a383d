package results

import (
	"fmt"

	"festrack/app/database"
	"festrack/app/models"
)

// WinnerInput is one winner slot in a jury submission. CandidateID is a
// student id for single-section programs and a team id otherwise.
type WinnerInput struct {
	Position    int          `json:"position" validate:"required,gte=1,lte=3"`
	CandidateID string       `json:"candidate_id" validate:"required,uuid"`
	Grade       models.Grade `json:"grade" validate:"omitempty,oneof=A B C none"`
}

// PenaltyInput deducts points from a team. CandidateID may be a student id;
// it is resolved to the student's owning team.
type PenaltyInput struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	Points      int    `json:"points" validate:"gte=0"`
	Reason      string `json:"reason"`
}

// SubmitInput is a jury's full result submission for one program.
type SubmitInput struct {
	ProgramID   string         `json:"program_id" validate:"required,uuid"`
	JuryID      string         `json:"jury_id" validate:"required,uuid"`
	SubmittedBy string         `json:"-"`
	Winners     []WinnerInput  `json:"winners" validate:"required,len=3,dive"`
	Penalties   []PenaltyInput `json:"penalties" validate:"dive"`
}

// validateWinners checks the shape of a winner payload: exactly three
// entries, positions 1..3 each used once, no candidate placed twice.
func validateWinners(winners []WinnerInput) error {
	if len(winners) != 3 {
		return fmt.Errorf("%w: exactly 3 winners are required, got %d", ErrValidation, len(winners))
	}

	positions := make(map[int]bool, 3)
	candidates := make(map[string]bool, 3)
	for _, w := range winners {
		if w.Position < 1 || w.Position > 3 {
			return fmt.Errorf("%w: position %d is out of range", ErrValidation, w.Position)
		}
		if positions[w.Position] {
			return fmt.Errorf("%w: position %d appears more than once", ErrValidation, w.Position)
		}
		positions[w.Position] = true

		if w.CandidateID == "" {
			return fmt.Errorf("%w: winner at position %d has no candidate", ErrValidation, w.Position)
		}
		if candidates[w.CandidateID] {
			return fmt.Errorf("%w: candidate %s is placed more than once", ErrValidation, w.CandidateID)
		}
		candidates[w.CandidateID] = true

		if w.Grade != "" && !w.Grade.Valid() {
			return fmt.Errorf("%w: unknown grade %q", ErrValidation, w.Grade)
		}
	}
	return nil
}

// buildEntries resolves winner candidates and precomputes scores. For
// single-section programs candidates must resolve to students; otherwise to
// teams. Grades are forced to none outside the single section regardless of
// what the client sent.
func buildEntries(program *models.Program, winners []WinnerInput,
	students map[string]*models.Student, teams map[string]*models.Team) ([]*models.ResultEntry, error) {

	entries := make([]*models.ResultEntry, 0, len(winners))
	for _, w := range winners {
		grade := w.Grade
		if grade == "" {
			grade = models.GradeNone
		}

		entry := &models.ResultEntry{Position: w.Position, Grade: grade}

		if program.Section == models.SectionSingle {
			student, ok := students[w.CandidateID]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrInvalidCandidate, w.CandidateID)
			}
			id := student.ID
			entry.StudentID = &id
			entry.TeamID = student.TeamID
		} else {
			team, ok := teams[w.CandidateID]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrInvalidCandidate, w.CandidateID)
			}
			entry.TeamID = team.ID
			entry.Grade = models.GradeNone
		}

		entry.Score = CalculateScore(program.Section, program.Category, entry.Position, entry.Grade)
		entries = append(entries, entry)
	}
	return entries, nil
}

// resolvePenalties maps each penalty target to its owning team. A student
// target resolves through the student's team; penalties never touch a
// student's individual total.
func resolvePenalties(penalties []PenaltyInput,
	students map[string]*models.Student, teams map[string]*models.Team) ([]*models.ResultPenalty, error) {

	resolved := make([]*models.ResultPenalty, 0, len(penalties))
	for _, p := range penalties {
		if p.Points < 0 {
			return nil, fmt.Errorf("%w: penalty points must not be negative", ErrValidation)
		}

		penalty := &models.ResultPenalty{Points: p.Points, Reason: p.Reason}

		if student, ok := students[p.CandidateID]; ok {
			id := student.ID
			penalty.StudentID = &id
			penalty.TeamID = student.TeamID
		} else if team, ok := teams[p.CandidateID]; ok {
			penalty.TeamID = team.ID
		} else {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPenaltyTarget, p.CandidateID)
		}

		resolved = append(resolved, penalty)
	}
	return resolved, nil
}

// pointsDelta is one ledger mutation: points added to a team and, when
// StudentID is set, to that student as well.
type pointsDelta struct {
	StudentID *string
	TeamID    string
	Points    int
}

// entryDeltas converts entries into ledger mutations. sign is +1 to apply
// and -1 to undo.
func entryDeltas(entries []*models.ResultEntry, sign int) []pointsDelta {
	deltas := make([]pointsDelta, 0, len(entries))
	for _, e := range entries {
		deltas = append(deltas, pointsDelta{
			StudentID: e.StudentID,
			TeamID:    e.TeamID,
			Points:    sign * e.Score,
		})
	}
	return deltas
}

// penaltyDeltas converts penalties into ledger mutations. Penalties reduce
// the team total only, so StudentID is never set on the delta even when the
// penalty was targeted at a student.
func penaltyDeltas(penalties []*models.ResultPenalty, sign int) []pointsDelta {
	deltas := make([]pointsDelta, 0, len(penalties))
	for _, p := range penalties {
		deltas = append(deltas, pointsDelta{
			TeamID: p.TeamID,
			Points: -sign * p.Points,
		})
	}
	return deltas
}

// applyDeltas writes ledger mutations through atomic increments.
func applyDeltas(q database.Querier, deltas []pointsDelta) error {
	for _, d := range deltas {
		if d.StudentID != nil {
			if err := database.IncrementStudentPoints(q, *d.StudentID, d.Points); err != nil {
				return err
			}
		}
		if err := database.IncrementTeamPoints(q, d.TeamID, d.Points); err != nil {
			return err
		}
	}
	return nil
}

// candidateIDs collects the ids referenced by winners and penalties so the
// workflow can resolve them in two batched lookups.
func candidateIDs(winners []WinnerInput, penalties []PenaltyInput) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, w := range winners {
		if !seen[w.CandidateID] {
			seen[w.CandidateID] = true
			ids = append(ids, w.CandidateID)
		}
	}
	for _, p := range penalties {
		if !seen[p.CandidateID] {
			seen[p.CandidateID] = true
			ids = append(ids, p.CandidateID)
		}
	}
	return ids
}
