package scoreboard

import (
	"database/sql"
	"fmt"

	"festrack/app/models"
)

// GetTeamStandings ranks active teams by their running totals. Ties share
// points but are ranked by name for a stable ordering.
func GetTeamStandings(db *sql.DB) ([]*models.TeamStanding, error) {
	rows, err := db.Query(`
		SELECT id, name, code, total_points
		FROM teams
		WHERE is_active = true
		ORDER BY total_points DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.TeamStanding
	rank := 0
	for rows.Next() {
		s := &models.TeamStanding{}
		if err := rows.Scan(&s.TeamID, &s.TeamName, &s.TeamCode, &s.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan team standing: %w", err)
		}
		rank++
		s.Rank = rank
		standings = append(standings, s)
	}

	return standings, rows.Err()
}

// GetTopStudents returns the highest scoring students with their team names.
func GetTopStudents(db *sql.DB, limit int) ([]*models.StudentStanding, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(`
		SELECT s.id, s.chest_number, s.first_name, s.last_name, t.name, s.total_points
		FROM students s
		JOIN teams t ON t.id = s.team_id
		WHERE s.is_active = true
		ORDER BY s.total_points DESC, s.chest_number ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top students: %w", err)
	}
	defer rows.Close()

	var standings []*models.StudentStanding
	rank := 0
	for rows.Next() {
		s := &models.StudentStanding{}
		var firstName, lastName string
		if err := rows.Scan(&s.StudentID, &s.ChestNumber, &firstName, &lastName, &s.TeamName, &s.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan student standing: %w", err)
		}
		rank++
		s.Rank = rank
		s.Name = firstName + " " + lastName
		standings = append(standings, s)
	}

	return standings, rows.Err()
}

// PublishedResult is one approved program result as shown on the public board.
type PublishedResult struct {
	ProgramID   string            `json:"program_id"`
	ProgramName string            `json:"program_name"`
	ProgramCode string            `json:"program_code"`
	Section     models.Section    `json:"section"`
	Category    models.Category   `json:"category"`
	Winners     []PublishedWinner `json:"winners"`
}

type PublishedWinner struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	ChestNumber int    `json:"chest_number,omitempty"`
	TeamName    string `json:"team_name"`
	Grade       string `json:"grade,omitempty"`
	Score       int    `json:"score"`
}

// GetPublishedResults lists every approved result with its winners. Only
// approved results are visible here; pending submissions stay private.
func GetPublishedResults(db *sql.DB) ([]*PublishedResult, error) {
	rows, err := db.Query(`
		SELECT p.id, p.name, p.code, p.section, p.category,
		       e.position, e.grade, e.score,
		       s.first_name, s.last_name, s.chest_number,
		       t.name
		FROM results r
		JOIN programs p ON p.id = r.program_id
		JOIN result_entries e ON e.result_id = r.id
		LEFT JOIN students s ON s.id = e.student_id
		JOIN teams t ON t.id = e.team_id
		WHERE r.status = 'approved'
		ORDER BY r.submitted_at DESC, p.name ASC, e.position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch published results: %w", err)
	}
	defer rows.Close()

	var results []*PublishedResult
	byProgram := make(map[string]*PublishedResult)
	for rows.Next() {
		var (
			programID, programName, programCode string
			section, category, grade            string
			position, score                     int
			firstName, lastName                 sql.NullString
			chestNumber                         sql.NullInt64
			teamName                            string
		)
		if err := rows.Scan(&programID, &programName, &programCode, &section, &category,
			&position, &grade, &score,
			&firstName, &lastName, &chestNumber, &teamName); err != nil {
			return nil, fmt.Errorf("failed to scan published result: %w", err)
		}

		result, ok := byProgram[programID]
		if !ok {
			result = &PublishedResult{
				ProgramID:   programID,
				ProgramName: programName,
				ProgramCode: programCode,
				Section:     models.Section(section),
				Category:    models.Category(category),
			}
			byProgram[programID] = result
			results = append(results, result)
		}

		winner := PublishedWinner{
			Position: position,
			TeamName: teamName,
			Score:    score,
		}
		if firstName.Valid {
			winner.Name = firstName.String + " " + lastName.String
			winner.ChestNumber = int(chestNumber.Int64)
			if grade != string(models.GradeNone) {
				winner.Grade = grade
			}
		} else {
			winner.Name = teamName
		}
		result.Winners = append(result.Winners, winner)
	}

	return results, rows.Err()
}
