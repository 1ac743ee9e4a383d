package database

import (
	"database/sql"
	"log"
)

// RunMigrations applies the schema bootstrap. Every statement is
// idempotent, so this runs unconditionally at startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone VARCHAR(20),
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		festival_name TEXT NOT NULL DEFAULT 'Festival',
		chest_number_base INTEGER NOT NULL DEFAULT 100,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT UNIQUE NOT NULL,
		code TEXT UNIQUE NOT NULL,
		manager_id UUID REFERENCES users(id),
		total_points INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	// chest_number carries the one-badge-per-student invariant
	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		chest_number INTEGER UNIQUE NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		gender VARCHAR(10),
		team_id UUID NOT NULL REFERENCES teams(id),
		total_points INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS programs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		code TEXT UNIQUE NOT NULL,
		section TEXT NOT NULL CHECK (section IN ('single', 'group', 'general')),
		category TEXT NOT NULL DEFAULT 'none' CHECK (category IN ('A', 'B', 'C', 'none')),
		stage BOOLEAN NOT NULL DEFAULT false,
		candidate_limit INTEGER NOT NULL DEFAULT 1 CHECK (candidate_limit >= 1),
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS program_registrations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		program_id UUID NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (program_id, student_id)
	)`,

	`CREATE TABLE IF NOT EXISTS assigned_programs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		program_id UUID NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		jury_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'submitted', 'completed')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (program_id, jury_id)
	)`,

	// The UNIQUE constraint on program_id is the one-result-per-program
	// invariant; it covers pending and approved records at once because
	// approval flips status in place instead of moving rows.
	`CREATE TABLE IF NOT EXISTS results (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		program_id UUID UNIQUE NOT NULL REFERENCES programs(id),
		jury_id UUID NOT NULL REFERENCES users(id),
		submitted_by UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved')),
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS result_entries (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		result_id UUID NOT NULL REFERENCES results(id) ON DELETE CASCADE,
		position INTEGER NOT NULL CHECK (position BETWEEN 1 AND 3),
		student_id UUID REFERENCES students(id),
		team_id UUID NOT NULL REFERENCES teams(id),
		grade TEXT NOT NULL DEFAULT 'none' CHECK (grade IN ('A', 'B', 'C', 'none')),
		score INTEGER NOT NULL,
		UNIQUE (result_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS result_penalties (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		result_id UUID NOT NULL REFERENCES results(id) ON DELETE CASCADE,
		student_id UUID REFERENCES students(id),
		team_id UUID NOT NULL REFERENCES teams(id),
		points INTEGER NOT NULL CHECK (points >= 0),
		reason TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		program_id UUID REFERENCES programs(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		body TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_students_team ON students(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_registrations_program ON program_registrations(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assigned_jury ON assigned_programs(jury_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at DESC)`,
}
