package students

import (
	"database/sql"
	"fmt"

	"festrack/app/database"
	"festrack/app/models"
)

// chestNumberAttempts bounds the retry loop when two inserts race for the
// same chest number; the unique index decides the loser, who just re-reads
// the max.
const chestNumberAttempts = 3

// nextChestNumber picks the next free badge number at or above the
// configured base.
func nextChestNumber(q database.Querier, base int) (int, error) {
	var next int
	err := q.QueryRow(`SELECT COALESCE(MAX(chest_number), $1 - 1) + 1 FROM students`, base).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute chest number: %w", err)
	}
	if next < base {
		next = base
	}
	return next, nil
}

// CreateStudent inserts a student, assigning a globally unique chest
// number. Races on the number are resolved by the unique index and retried.
func CreateStudent(db *sql.DB, student *models.Student) error {
	settings, err := database.GetSettings(db)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for attempt := 0; attempt < chestNumberAttempts; attempt++ {
		number, err := nextChestNumber(db, settings.ChestNumberBase)
		if err != nil {
			return err
		}

		err = db.QueryRow(`
			INSERT INTO students (chest_number, first_name, last_name, gender, team_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, chest_number, created_at, updated_at
		`, number, student.FirstName, student.LastName, student.Gender, student.TeamID).
			Scan(&student.ID, &student.ChestNumber, &student.CreatedAt, &student.UpdatedAt)
		if err == nil {
			return nil
		}
		if !database.IsUniqueViolation(err) {
			return fmt.Errorf("failed to create student: %w", err)
		}
	}
	return fmt.Errorf("failed to allocate a chest number after %d attempts", chestNumberAttempts)
}

// GetAllStudents returns active students with their teams, ordered by
// chest number.
func GetAllStudents(db *sql.DB, search string, limit, offset int) ([]*models.Student, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM students s
		WHERE s.deleted_at IS NULL
		AND ($1 = '' OR s.first_name ILIKE '%' || $1 || '%' OR s.last_name ILIKE '%' || $1 || '%'
			OR CAST(s.chest_number AS TEXT) = $1)
	`
	var total int
	if err := db.QueryRow(countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	query := `
		SELECT s.id, s.chest_number, s.first_name, s.last_name, s.gender, s.team_id,
			s.total_points, s.is_active, s.created_at, s.updated_at,
			t.id, t.name, t.code
		FROM students s
		JOIN teams t ON s.team_id = t.id
		WHERE s.deleted_at IS NULL
		AND ($1 = '' OR s.first_name ILIKE '%' || $1 || '%' OR s.last_name ILIKE '%' || $1 || '%'
			OR CAST(s.chest_number AS TEXT) = $1)
		ORDER BY s.chest_number
	`
	args := []interface{}{search}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		var team models.Team
		var gender sql.NullString
		err := rows.Scan(&s.ID, &s.ChestNumber, &s.FirstName, &s.LastName, &gender, &s.TeamID,
			&s.TotalPoints, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&team.ID, &team.Name, &team.Code)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student: %w", err)
		}
		if gender.Valid {
			s.Gender = gender.String
		}
		s.Team = &team
		students = append(students, &s)
	}
	return students, total, rows.Err()
}

// GetStudentByID returns one student with their team.
func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	var s models.Student
	var team models.Team
	var gender sql.NullString
	err := db.QueryRow(`
		SELECT s.id, s.chest_number, s.first_name, s.last_name, s.gender, s.team_id,
			s.total_points, s.is_active, s.created_at, s.updated_at,
			t.id, t.name, t.code
		FROM students s
		JOIN teams t ON s.team_id = t.id
		WHERE s.id = $1 AND s.deleted_at IS NULL
	`, studentID).Scan(&s.ID, &s.ChestNumber, &s.FirstName, &s.LastName, &gender, &s.TeamID,
		&s.TotalPoints, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&team.ID, &team.Name, &team.Code)
	if err != nil {
		return nil, err
	}
	if gender.Valid {
		s.Gender = gender.String
	}
	s.Team = &team
	return &s, nil
}

// UpdateStudent updates identity fields. Chest number and point totals are
// never editable through this path.
func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, gender = $3, team_id = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := db.QueryRow(query, student.FirstName, student.LastName, student.Gender,
		student.TeamID, student.IsActive, student.ID).Scan(&student.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("student not found or already deleted")
	}
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

// DeleteStudent soft-deletes a student.
func DeleteStudent(db *sql.DB, studentID string) error {
	result, err := db.Exec(`UPDATE students SET deleted_at = NOW(), is_active = false
							WHERE id = $1 AND deleted_at IS NULL`, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("student not found or already deleted")
	}
	return nil
}

// GetTeamByCode resolves a team code, used by the CSV importer.
func GetTeamByCode(db *sql.DB, code string) (*models.Team, error) {
	var t models.Team
	err := db.QueryRow(`SELECT id, name, code FROM teams WHERE code = $1 AND deleted_at IS NULL`, code).
		Scan(&t.ID, &t.Name, &t.Code)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
