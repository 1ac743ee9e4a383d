package database

import (
	"database/sql"
	"fmt"

	"festrack/app/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so lookup and increment
// helpers can run inside the result workflow's transactions.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// IsUniqueViolation reports whether err is a Postgres unique-index violation.
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db Querier, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, nil
}

// CreateUser inserts a user with the given role, hashing the password.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO users (email, password, first_name, last_name, phone)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, user.Email, hashed, user.FirstName, user.LastName, user.Phone).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.Password = hashed

	_, err = tx.Exec(`INSERT INTO user_roles (user_id, role_id)
					  SELECT $1, id FROM roles WHERE name = $2`, user.ID, roleName)
	if err != nil {
		return fmt.Errorf("failed to assign role %s: %w", roleName, err)
	}

	return tx.Commit()
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// GetUsersByRole returns all active users holding the named role.
func GetUsersByRole(db *sql.DB, roleName string) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		JOIN roles r ON ur.role_id = r.id
		WHERE r.name = $1 AND u.is_active = true AND u.deleted_at IS NULL
		ORDER BY u.first_name, u.last_name
	`
	rows, err := db.Query(query, roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by role: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var phone sql.NullString
		err := rows.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName,
			&phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if phone.Valid {
			user.Phone = phone.String
		}
		users = append(users, &user)
	}
	return users, nil
}

// UserHasRole checks a single role membership.
func UserHasRole(db *sql.DB, userID, roleName string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM user_roles ur
		JOIN roles r ON ur.role_id = r.id
		WHERE ur.user_id = $1 AND r.name = $2
	)`
	err := db.QueryRow(query, userID, roleName).Scan(&exists)
	return exists, err
}

// GetProgramByID fetches an active program.
func GetProgramByID(db Querier, programID string) (*models.Program, error) {
	program := &models.Program{}
	query := `SELECT id, name, code, section, category, stage, candidate_limit, is_active, created_at, updated_at
			  FROM programs WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, programID).Scan(
		&program.ID, &program.Name, &program.Code, &program.Section, &program.Category,
		&program.Stage, &program.CandidateLimit, &program.IsActive,
		&program.CreatedAt, &program.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return program, nil
}

// GetStudentsByIDs fetches students keyed by id. Missing ids are simply
// absent from the map; callers decide whether that is an error.
func GetStudentsByIDs(db Querier, ids []string) (map[string]*models.Student, error) {
	students := make(map[string]*models.Student)
	if len(ids) == 0 {
		return students, nil
	}

	query := `SELECT id, chest_number, first_name, last_name, team_id, total_points
			  FROM students WHERE id = ANY($1) AND deleted_at IS NULL`
	rows, err := db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.ChestNumber, &s.FirstName, &s.LastName, &s.TeamID, &s.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students[s.ID] = &s
	}
	return students, rows.Err()
}

// GetTeamsByIDs fetches teams keyed by id.
func GetTeamsByIDs(db Querier, ids []string) (map[string]*models.Team, error) {
	teams := make(map[string]*models.Team)
	if len(ids) == 0 {
		return teams, nil
	}

	query := `SELECT id, name, code, total_points
			  FROM teams WHERE id = ANY($1) AND deleted_at IS NULL`
	rows, err := db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams[t.ID] = &t
	}
	return teams, rows.Err()
}

// IncrementStudentPoints adds delta (which may be negative) to a student's
// total as a single atomic update.
func IncrementStudentPoints(db Querier, studentID string, delta int) error {
	_, err := db.Exec(`UPDATE students SET total_points = total_points + $1, updated_at = NOW() WHERE id = $2`,
		delta, studentID)
	if err != nil {
		return fmt.Errorf("failed to update student points: %w", err)
	}
	return nil
}

// IncrementTeamPoints adds delta (which may be negative) to a team's total
// as a single atomic update.
func IncrementTeamPoints(db Querier, teamID string, delta int) error {
	_, err := db.Exec(`UPDATE teams SET total_points = total_points + $1, updated_at = NOW() WHERE id = $2`,
		delta, teamID)
	if err != nil {
		return fmt.Errorf("failed to update team points: %w", err)
	}
	return nil
}

// SetAssignmentStatus flips the jury's assignment status for a program.
func SetAssignmentStatus(db Querier, programID, juryID string, status models.AssignmentStatus) error {
	_, err := db.Exec(`UPDATE assigned_programs SET status = $1, updated_at = NOW()
					   WHERE program_id = $2 AND jury_id = $3`, status, programID, juryID)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	return nil
}

// CreateNotification persists a notification for the public feed.
func CreateNotification(db Querier, n *models.Notification) error {
	query := `INSERT INTO notifications (program_id, title, body)
			  VALUES ($1, $2, $3) RETURNING id, created_at`
	err := db.QueryRow(query, n.ProgramID, n.Title, n.Body).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetRecentNotifications returns the newest notifications, most recent first.
func GetRecentNotifications(db *sql.DB, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT n.id, n.program_id, n.title, n.body, n.created_at
			  FROM notifications n ORDER BY n.created_at DESC LIMIT $1`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		var programID, body sql.NullString
		if err := rows.Scan(&n.ID, &programID, &n.Title, &body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if programID.Valid {
			n.ProgramID = &programID.String
		}
		if body.Valid {
			n.Body = body.String
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// GetSettings returns the single settings row.
func GetSettings(db *sql.DB) (*models.Settings, error) {
	s := &models.Settings{}
	query := `SELECT id, festival_name, chest_number_base, updated_at FROM settings LIMIT 1`
	err := db.QueryRow(query).Scan(&s.ID, &s.FestivalName, &s.ChestNumberBase, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateSettings overwrites the single settings row.
func UpdateSettings(db *sql.DB, s *models.Settings) error {
	query := `UPDATE settings SET festival_name = $1, chest_number_base = $2, updated_at = NOW()
			  WHERE id = $3 RETURNING updated_at`
	err := db.QueryRow(query, s.FestivalName, s.ChestNumberBase, s.ID).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
