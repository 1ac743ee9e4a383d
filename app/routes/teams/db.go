package teams

import (
	"database/sql"
	"fmt"

	"festrack/app/models"
)

// GetAllTeams returns active teams with student counts, highest total first.
func GetAllTeams(db *sql.DB) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.code, t.manager_id, t.total_points, t.is_active,
			t.created_at, t.updated_at,
			COUNT(s.id) AS student_count
		FROM teams t
		LEFT JOIN students s ON t.id = s.team_id AND s.deleted_at IS NULL
		WHERE t.deleted_at IS NULL
		GROUP BY t.id
		ORDER BY t.total_points DESC, t.name
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var t models.Team
		var managerID sql.NullString
		err := rows.Scan(&t.ID, &t.Name, &t.Code, &managerID, &t.TotalPoints, &t.IsActive,
			&t.CreatedAt, &t.UpdatedAt, &t.StudentCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		if managerID.Valid {
			t.ManagerID = &managerID.String
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

// GetTeamByID returns one team with its roster.
func GetTeamByID(db *sql.DB, teamID string) (*models.Team, error) {
	var t models.Team
	var managerID sql.NullString
	err := db.QueryRow(`
		SELECT id, name, code, manager_id, total_points, is_active, created_at, updated_at
		FROM teams WHERE id = $1 AND deleted_at IS NULL
	`, teamID).Scan(&t.ID, &t.Name, &t.Code, &managerID, &t.TotalPoints, &t.IsActive,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if managerID.Valid {
		t.ManagerID = &managerID.String
	}

	rows, err := db.Query(`
		SELECT id, chest_number, first_name, last_name, total_points
		FROM students WHERE team_id = $1 AND deleted_at IS NULL
		ORDER BY chest_number
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team roster: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.ChestNumber, &s.FirstName, &s.LastName, &s.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		s.TeamID = teamID
		t.Students = append(t.Students, &s)
	}
	t.StudentCount = len(t.Students)
	return &t, rows.Err()
}

// CreateTeam inserts a new team.
func CreateTeam(db *sql.DB, team *models.Team) error {
	query := `
		INSERT INTO teams (name, code, manager_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query, team.Name, team.Code, team.ManagerID).
		Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// UpdateTeam updates team metadata. Point totals are owned by the result
// workflow and not editable here.
func UpdateTeam(db *sql.DB, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, code = $2, manager_id = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := db.QueryRow(query, team.Name, team.Code, team.ManagerID, team.IsActive, team.ID).
		Scan(&team.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("team not found or already deleted")
	}
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

// DeleteTeam soft-deletes a team.
func DeleteTeam(db *sql.DB, teamID string) error {
	result, err := db.Exec(`UPDATE teams SET deleted_at = NOW(), is_active = false
							WHERE id = $1 AND deleted_at IS NULL`, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("team not found or already deleted")
	}
	return nil
}
