package juries

import (
	"database/sql"
	"fmt"

	"festrack/app/database"
	"festrack/app/models"
)

// AssignProgram creates a pending assignment for a jury. The unique index
// on (program_id, jury_id) rejects duplicates.
func AssignProgram(db *sql.DB, programID, juryID string) (*models.AssignedProgram, error) {
	if _, err := database.GetProgramByID(db, programID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("program not found")
		}
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}

	isJury, err := database.UserHasRole(db, juryID, models.RoleJury)
	if err != nil {
		return nil, fmt.Errorf("failed to check jury role: %w", err)
	}
	if !isJury {
		return nil, fmt.Errorf("user is not a jury")
	}

	assignment := &models.AssignedProgram{
		ProgramID: programID,
		JuryID:    juryID,
		Status:    models.AssignmentPending,
	}
	err = db.QueryRow(`
		INSERT INTO assigned_programs (program_id, jury_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, created_at, updated_at
	`, programID, juryID).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("program is already assigned to this jury")
		}
		return nil, fmt.Errorf("failed to assign program: %w", err)
	}
	return assignment, nil
}

// UnassignProgram removes an assignment that has not been completed.
func UnassignProgram(db *sql.DB, programID, juryID string) error {
	result, err := db.Exec(`
		DELETE FROM assigned_programs
		WHERE program_id = $1 AND jury_id = $2 AND status != 'completed'
	`, programID, juryID)
	if err != nil {
		return fmt.Errorf("failed to unassign program: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("assignment not found or already completed")
	}
	return nil
}

// GetAssignmentsByJury lists a jury's assignments with program details.
func GetAssignmentsByJury(db *sql.DB, juryID string) ([]*models.AssignmentView, error) {
	query := `
		SELECT a.id, a.program_id, a.jury_id, a.status, a.created_at, a.updated_at,
			p.name, p.code, p.section
		FROM assigned_programs a
		JOIN programs p ON a.program_id = p.id
		WHERE a.jury_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.code
	`
	rows, err := db.Query(query, juryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.AssignmentView
	for rows.Next() {
		var v models.AssignmentView
		err := rows.Scan(&v.ID, &v.ProgramID, &v.JuryID, &v.Status, &v.CreatedAt, &v.UpdatedAt,
			&v.ProgramName, &v.ProgramCode, &v.Section)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, &v)
	}
	return assignments, rows.Err()
}

// GetAllAssignments lists every assignment with program and jury details.
func GetAllAssignments(db *sql.DB) ([]*models.AssignmentView, error) {
	query := `
		SELECT a.id, a.program_id, a.jury_id, a.status, a.created_at, a.updated_at,
			p.name, p.code, p.section,
			u.first_name || ' ' || u.last_name
		FROM assigned_programs a
		JOIN programs p ON a.program_id = p.id
		JOIN users u ON a.jury_id = u.id
		WHERE p.deleted_at IS NULL
		ORDER BY p.code, u.first_name
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.AssignmentView
	for rows.Next() {
		var v models.AssignmentView
		err := rows.Scan(&v.ID, &v.ProgramID, &v.JuryID, &v.Status, &v.CreatedAt, &v.UpdatedAt,
			&v.ProgramName, &v.ProgramCode, &v.Section, &v.JuryName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, &v)
	}
	return assignments, rows.Err()
}
