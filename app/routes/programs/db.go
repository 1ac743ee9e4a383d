package programs

import (
	"database/sql"
	"errors"
	"fmt"

	"festrack/app/database"
	"festrack/app/models"
)

// MaxStageProgramsPerStudent caps how many stage programs one student may
// register for.
const MaxStageProgramsPerStudent = 6

var (
	ErrCandidateLimit    = errors.New("team has reached the candidate limit for this program")
	ErrStageLimit        = errors.New("student has reached the stage-program participation limit")
	ErrAlreadyRegistered = errors.New("student is already registered for this program")
	ErrSectionMismatch   = errors.New("only single-section programs take individual registrations")
)

// GetAllPrograms returns active programs with their registration counts.
func GetAllPrograms(db *sql.DB) ([]*models.Program, error) {
	query := `
		SELECT p.id, p.name, p.code, p.section, p.category, p.stage, p.candidate_limit,
			p.is_active, p.created_at, p.updated_at,
			COUNT(pr.id) AS registration_count
		FROM programs p
		LEFT JOIN program_registrations pr ON p.id = pr.program_id
		WHERE p.deleted_at IS NULL
		GROUP BY p.id
		ORDER BY p.code
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Section, &p.Category, &p.Stage,
			&p.CandidateLimit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.RegistrationCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, &p)
	}
	return programs, rows.Err()
}

// CreateProgram inserts a new program.
func CreateProgram(db *sql.DB, p *models.Program) error {
	query := `
		INSERT INTO programs (name, code, section, category, stage, candidate_limit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query, p.Name, p.Code, p.Section, p.Category, p.Stage, p.CandidateLimit).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// UpdateProgram updates a program's metadata. Section and category changes
// do not cascade into already-approved results: entry scores were
// precomputed at submission time.
func UpdateProgram(db *sql.DB, p *models.Program) error {
	query := `
		UPDATE programs
		SET name = $1, code = $2, section = $3, category = $4, stage = $5,
			candidate_limit = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := db.QueryRow(query, p.Name, p.Code, p.Section, p.Category, p.Stage,
		p.CandidateLimit, p.IsActive, p.ID).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("program not found or already deleted")
	}
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	return nil
}

// DeleteProgram soft-deletes a program.
func DeleteProgram(db *sql.DB, programID string) error {
	result, err := db.Exec(`UPDATE programs SET deleted_at = NOW(), is_active = false
							WHERE id = $1 AND deleted_at IS NULL`, programID)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("program not found or already deleted")
	}
	return nil
}

// RegisterStudent registers a student into a single-section program,
// enforcing the per-team candidate limit and the stage participation cap.
// The checks and the insert run in one transaction.
func RegisterStudent(db *sql.DB, programID, studentID string) (*models.ProgramReg, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	program, err := database.GetProgramByID(tx, programID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("program not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}
	if program.Section != models.SectionSingle {
		return nil, ErrSectionMismatch
	}

	students, err := database.GetStudentsByIDs(tx, []string{studentID})
	if err != nil {
		return nil, err
	}
	student, ok := students[studentID]
	if !ok {
		return nil, fmt.Errorf("student not found")
	}

	// Per-team candidate limit for this program
	var teamCount int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM program_registrations pr
		JOIN students s ON pr.student_id = s.id
		WHERE pr.program_id = $1 AND s.team_id = $2
	`, programID, student.TeamID).Scan(&teamCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count team registrations: %w", err)
	}
	if teamCount >= program.CandidateLimit {
		return nil, ErrCandidateLimit
	}

	// Stage participation cap per student
	if program.Stage {
		var stageCount int
		err = tx.QueryRow(`
			SELECT COUNT(*) FROM program_registrations pr
			JOIN programs p ON pr.program_id = p.id
			WHERE pr.student_id = $1 AND p.stage = true AND p.deleted_at IS NULL
		`, studentID).Scan(&stageCount)
		if err != nil {
			return nil, fmt.Errorf("failed to count stage registrations: %w", err)
		}
		if stageCount >= MaxStageProgramsPerStudent {
			return nil, ErrStageLimit
		}
	}

	reg := &models.ProgramReg{ProgramID: programID, StudentID: studentID}
	err = tx.QueryRow(`
		INSERT INTO program_registrations (program_id, student_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, programID, studentID).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to register student: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return reg, nil
}

// UnregisterStudent removes a registration.
func UnregisterStudent(db *sql.DB, programID, studentID string) error {
	result, err := db.Exec(`DELETE FROM program_registrations WHERE program_id = $1 AND student_id = $2`,
		programID, studentID)
	if err != nil {
		return fmt.Errorf("failed to unregister student: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("registration not found")
	}
	return nil
}

// GetRegistrationsByProgram lists registered students for a program.
func GetRegistrationsByProgram(db *sql.DB, programID string) ([]*models.ProgramReg, error) {
	query := `
		SELECT pr.id, pr.program_id, pr.student_id, pr.created_at,
			s.id, s.chest_number, s.first_name, s.last_name, s.team_id,
			t.id, t.name, t.code
		FROM program_registrations pr
		JOIN students s ON pr.student_id = s.id
		JOIN teams t ON s.team_id = t.id
		WHERE pr.program_id = $1
		ORDER BY s.chest_number
	`
	rows, err := db.Query(query, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.ProgramReg
	for rows.Next() {
		var reg models.ProgramReg
		var student models.Student
		var team models.Team
		err := rows.Scan(&reg.ID, &reg.ProgramID, &reg.StudentID, &reg.CreatedAt,
			&student.ID, &student.ChestNumber, &student.FirstName, &student.LastName, &student.TeamID,
			&team.ID, &team.Name, &team.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		student.Team = &team
		reg.Student = &student
		regs = append(regs, &reg)
	}
	return regs, rows.Err()
}
