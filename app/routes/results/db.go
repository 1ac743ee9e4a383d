package results

import (
	"database/sql"
	"fmt"

	"festrack/app/database"
	"festrack/app/models"
	"festrack/app/realtime"
)

// SubmitResult validates a jury submission and writes the pending result.
// The whole sequence (duplicate check, candidate resolution, record and
// entry inserts, assignment flip) runs in one transaction, so a failure at
// any step leaves nothing behind. The pending record never touches the
// score ledger.
func SubmitResult(db *sql.DB, pub realtime.Publisher, in SubmitInput) (*models.Result, error) {
	if err := validateWinners(in.Winners); err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	program, err := database.GetProgramByID(tx, in.ProgramID)
	if err == sql.ErrNoRows {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}

	if _, err := database.GetUserByID(tx, in.JuryID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrJuryNotFound
		}
		return nil, fmt.Errorf("failed to fetch jury: %w", err)
	}

	ids := candidateIDs(in.Winners, in.Penalties)
	students, err := database.GetStudentsByIDs(tx, ids)
	if err != nil {
		return nil, err
	}
	teams, err := database.GetTeamsByIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	entries, err := buildEntries(program, in.Winners, students, teams)
	if err != nil {
		return nil, err
	}
	penalties, err := resolvePenalties(in.Penalties, students, teams)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		ProgramID:   in.ProgramID,
		JuryID:      in.JuryID,
		SubmittedBy: in.SubmittedBy,
		Status:      models.ResultPending,
		Entries:     entries,
		Penalties:   penalties,
	}

	// Conditional insert: the unique index on program_id is the
	// one-result-per-program invariant. A conflict means a record already
	// exists in either state; its status picks the error kind.
	err = tx.QueryRow(`
		INSERT INTO results (program_id, jury_id, submitted_by, status, submitted_at)
		VALUES ($1, $2, $3, 'pending', NOW())
		ON CONFLICT (program_id) DO NOTHING
		RETURNING id, submitted_at, created_at, updated_at
	`, in.ProgramID, in.JuryID, in.SubmittedBy).
		Scan(&result.ID, &result.SubmittedAt, &result.CreatedAt, &result.UpdatedAt)
	if err == sql.ErrNoRows {
		var status models.ResultStatus
		if err := tx.QueryRow(`SELECT status FROM results WHERE program_id = $1`, in.ProgramID).Scan(&status); err != nil {
			return nil, fmt.Errorf("failed to check existing result: %w", err)
		}
		if status == models.ResultApproved {
			return nil, ErrDuplicateApproved
		}
		return nil, ErrDuplicatePending
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}

	if err := insertEntries(tx, result.ID, entries); err != nil {
		return nil, err
	}
	if err := insertPenalties(tx, result.ID, penalties); err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO assigned_programs (program_id, jury_id, status)
		VALUES ($1, $2, 'submitted')
		ON CONFLICT (program_id, jury_id) DO UPDATE SET status = 'submitted', updated_at = NOW()
	`, in.ProgramID, in.JuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	pub.Publish(realtime.EventResultSubmitted, map[string]interface{}{
		"result_id":    result.ID,
		"program_id":   program.ID,
		"program_name": program.Name,
	})

	result.Program = program
	return result, nil
}

// ApproveResult flips a pending result to approved and applies its score
// deltas, all in one transaction. The conditional status flip makes a
// second approval of the same id fail ErrResultNotFound without touching
// the ledger.
func ApproveResult(db *sql.DB, pub realtime.Publisher, resultID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var programID, juryID string
	err = tx.QueryRow(`
		UPDATE results SET status = 'approved', submitted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING program_id, jury_id
	`, resultID).Scan(&programID, &juryID)
	if err == sql.ErrNoRows {
		return ErrResultNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to approve result: %w", err)
	}

	entries, err := getEntries(tx, resultID)
	if err != nil {
		return err
	}
	penalties, err := getPenalties(tx, resultID)
	if err != nil {
		return err
	}

	if err := applyDeltas(tx, entryDeltas(entries, +1)); err != nil {
		return err
	}
	if err := applyDeltas(tx, penaltyDeltas(penalties, +1)); err != nil {
		return err
	}

	if err := database.SetAssignmentStatus(tx, programID, juryID, models.AssignmentCompleted); err != nil {
		return err
	}

	program, err := database.GetProgramByID(tx, programID)
	if err != nil {
		return fmt.Errorf("failed to fetch program: %w", err)
	}
	notification := &models.Notification{
		ProgramID: &programID,
		Title:     fmt.Sprintf("Result published: %s", program.Name),
		Body:      fmt.Sprintf("Results for %s (%s) are out.", program.Name, program.Code),
	}
	if err := database.CreateNotification(tx, notification); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	pub.Publish(realtime.EventResultPublished, map[string]interface{}{
		"program_id":   programID,
		"program_name": program.Name,
		"title":        notification.Title,
	})
	pub.Publish(realtime.EventResultApproved, map[string]interface{}{"result_id": resultID, "program_id": programID})
	pub.Publish(realtime.EventScoreboardUpdate, nil)
	return nil
}

// RejectResult discards a pending result so the jury can resubmit. No
// ledger effect: pending results never touched it.
func RejectResult(db *sql.DB, pub realtime.Publisher, resultID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var programID, juryID string
	err = tx.QueryRow(`
		DELETE FROM results WHERE id = $1 AND status = 'pending'
		RETURNING program_id, jury_id
	`, resultID).Scan(&programID, &juryID)
	if err == sql.ErrNoRows {
		return ErrResultNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to reject result: %w", err)
	}

	if err := database.SetAssignmentStatus(tx, programID, juryID, models.AssignmentPending); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	pub.Publish(realtime.EventResultRejected, map[string]interface{}{"result_id": resultID, "program_id": programID})
	return nil
}

// UpdateResult rewrites a result's entries and penalties from new winner
// and penalty payloads. For a pending result this is a plain overwrite.
// For an approved result the old deltas are fully undone before the new
// ones are applied: the symmetric inverse must complete first so totals
// end up exactly as if the old entries were never applied.
func UpdateResult(db *sql.DB, pub realtime.Publisher, resultID string, winners []WinnerInput, penalties []PenaltyInput) (*models.Result, error) {
	if err := validateWinners(winners); err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result := &models.Result{ID: resultID}
	err = tx.QueryRow(`
		SELECT program_id, jury_id, submitted_by, status, submitted_at, created_at, updated_at
		FROM results WHERE id = $1
		FOR UPDATE
	`, resultID).Scan(&result.ProgramID, &result.JuryID, &result.SubmittedBy,
		&result.Status, &result.SubmittedAt, &result.CreatedAt, &result.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}

	program, err := database.GetProgramByID(tx, result.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}

	ids := candidateIDs(winners, penalties)
	students, err := database.GetStudentsByIDs(tx, ids)
	if err != nil {
		return nil, err
	}
	teams, err := database.GetTeamsByIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	newEntries, err := buildEntries(program, winners, students, teams)
	if err != nil {
		return nil, err
	}
	newPenalties, err := resolvePenalties(penalties, students, teams)
	if err != nil {
		return nil, err
	}

	if result.Status == models.ResultApproved {
		oldEntries, err := getEntries(tx, resultID)
		if err != nil {
			return nil, err
		}
		oldPenalties, err := getPenalties(tx, resultID)
		if err != nil {
			return nil, err
		}
		if err := applyDeltas(tx, entryDeltas(oldEntries, -1)); err != nil {
			return nil, err
		}
		if err := applyDeltas(tx, penaltyDeltas(oldPenalties, -1)); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(`DELETE FROM result_entries WHERE result_id = $1`, resultID); err != nil {
		return nil, fmt.Errorf("failed to clear entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM result_penalties WHERE result_id = $1`, resultID); err != nil {
		return nil, fmt.Errorf("failed to clear penalties: %w", err)
	}
	if err := insertEntries(tx, resultID, newEntries); err != nil {
		return nil, err
	}
	if err := insertPenalties(tx, resultID, newPenalties); err != nil {
		return nil, err
	}

	if result.Status == models.ResultApproved {
		if err := applyDeltas(tx, entryDeltas(newEntries, +1)); err != nil {
			return nil, err
		}
		if err := applyDeltas(tx, penaltyDeltas(newPenalties, +1)); err != nil {
			return nil, err
		}
	}

	err = tx.QueryRow(`UPDATE results SET updated_at = NOW() WHERE id = $1 RETURNING updated_at`, resultID).
		Scan(&result.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to touch result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if result.Status == models.ResultApproved {
		pub.Publish(realtime.EventScoreboardUpdate, nil)
	}

	result.Entries = newEntries
	result.Penalties = newPenalties
	result.Program = program
	return result, nil
}

// DeleteApprovedResult reverses an approved result's ledger effects and
// removes the record. The assignment stays at submitted (a jury did
// submit this result) so an admin can re-approve a corrected submission.
func DeleteApprovedResult(db *sql.DB, pub realtime.Publisher, resultID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var programID, juryID string
	err = tx.QueryRow(`
		SELECT program_id, jury_id FROM results
		WHERE id = $1 AND status = 'approved'
		FOR UPDATE
	`, resultID).Scan(&programID, &juryID)
	if err == sql.ErrNoRows {
		return ErrResultNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch result: %w", err)
	}

	entries, err := getEntries(tx, resultID)
	if err != nil {
		return err
	}
	penalties, err := getPenalties(tx, resultID)
	if err != nil {
		return err
	}

	if err := applyDeltas(tx, entryDeltas(entries, -1)); err != nil {
		return err
	}
	if err := applyDeltas(tx, penaltyDeltas(penalties, -1)); err != nil {
		return err
	}

	// entries and penalties go with the record via ON DELETE CASCADE
	if _, err := tx.Exec(`DELETE FROM results WHERE id = $1`, resultID); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	if err := database.SetAssignmentStatus(tx, programID, juryID, models.AssignmentSubmitted); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	pub.Publish(realtime.EventScoreboardUpdate, nil)
	return nil
}

func insertEntries(q database.Querier, resultID string, entries []*models.ResultEntry) error {
	for _, e := range entries {
		e.ResultID = resultID
		err := q.QueryRow(`
			INSERT INTO result_entries (result_id, position, student_id, team_id, grade, score)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, resultID, e.Position, e.StudentID, e.TeamID, e.Grade, e.Score).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("failed to insert entry at position %d: %w", e.Position, err)
		}
	}
	return nil
}

func insertPenalties(q database.Querier, resultID string, penalties []*models.ResultPenalty) error {
	for _, p := range penalties {
		p.ResultID = resultID
		err := q.QueryRow(`
			INSERT INTO result_penalties (result_id, student_id, team_id, points, reason)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, resultID, p.StudentID, p.TeamID, p.Points, p.Reason).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("failed to insert penalty: %w", err)
		}
	}
	return nil
}

func getEntries(q database.Querier, resultID string) ([]*models.ResultEntry, error) {
	rows, err := q.Query(`
		SELECT id, result_id, position, student_id, team_id, grade, score
		FROM result_entries WHERE result_id = $1 ORDER BY position
	`, resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.ResultEntry
	for rows.Next() {
		var e models.ResultEntry
		var studentID sql.NullString
		if err := rows.Scan(&e.ID, &e.ResultID, &e.Position, &studentID, &e.TeamID, &e.Grade, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if studentID.Valid {
			e.StudentID = &studentID.String
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func getPenalties(q database.Querier, resultID string) ([]*models.ResultPenalty, error) {
	rows, err := q.Query(`
		SELECT id, result_id, student_id, team_id, points, COALESCE(reason, '')
		FROM result_penalties WHERE result_id = $1
	`, resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch penalties: %w", err)
	}
	defer rows.Close()

	var penalties []*models.ResultPenalty
	for rows.Next() {
		var p models.ResultPenalty
		var studentID sql.NullString
		if err := rows.Scan(&p.ID, &p.ResultID, &studentID, &p.TeamID, &p.Points, &p.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		if studentID.Valid {
			p.StudentID = &studentID.String
		}
		penalties = append(penalties, &p)
	}
	return penalties, rows.Err()
}

// GetResultByID loads a full result record with its entries and penalties.
func GetResultByID(db *sql.DB, resultID string) (*models.Result, error) {
	result := &models.Result{ID: resultID}
	var program models.Program
	err := db.QueryRow(`
		SELECT r.program_id, r.jury_id, r.submitted_by, r.status, r.submitted_at, r.created_at, r.updated_at,
			p.id, p.name, p.code, p.section, p.category
		FROM results r
		JOIN programs p ON r.program_id = p.id
		WHERE r.id = $1
	`, resultID).Scan(&result.ProgramID, &result.JuryID, &result.SubmittedBy,
		&result.Status, &result.SubmittedAt, &result.CreatedAt, &result.UpdatedAt,
		&program.ID, &program.Name, &program.Code, &program.Section, &program.Category)
	if err == sql.ErrNoRows {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	result.Program = &program

	if result.Entries, err = getEntries(db, resultID); err != nil {
		return nil, err
	}
	if result.Penalties, err = getPenalties(db, resultID); err != nil {
		return nil, err
	}
	return result, nil
}

// GetResultsByStatus lists result records, newest first, optionally
// filtered by status.
func GetResultsByStatus(db *sql.DB, status models.ResultStatus) ([]*models.Result, error) {
	query := `
		SELECT r.id, r.program_id, r.jury_id, r.submitted_by, r.status, r.submitted_at, r.created_at, r.updated_at,
			p.id, p.name, p.code, p.section, p.category,
			u.id, u.first_name, u.last_name
		FROM results r
		JOIN programs p ON r.program_id = p.id
		JOIN users u ON r.jury_id = u.id
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY r.submitted_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		var r models.Result
		var program models.Program
		var jury models.User
		err := rows.Scan(&r.ID, &r.ProgramID, &r.JuryID, &r.SubmittedBy, &r.Status,
			&r.SubmittedAt, &r.CreatedAt, &r.UpdatedAt,
			&program.ID, &program.Name, &program.Code, &program.Section, &program.Category,
			&jury.ID, &jury.FirstName, &jury.LastName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Program = &program
		r.Jury = &jury
		results = append(results, &r)
	}
	return results, rows.Err()
}
