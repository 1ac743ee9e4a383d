package database

import (
	"database/sql"
	"fmt"
	"log"

	"festrack/app/models"
)

// Seed inserts the baseline rows the app expects: the role catalog and the
// single settings row. Safe to run on every startup.
func Seed(db *sql.DB) error {
	for _, role := range []string{models.RoleAdmin, models.RoleJury, models.RoleTeamManager} {
		_, err := db.Exec(`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role)
		if err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role, err)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}
	if count == 0 {
		_, err := db.Exec(`INSERT INTO settings (festival_name, chest_number_base) VALUES ($1, $2)`,
			"Festival", 100)
		if err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		log.Println("Seeded default settings")
	}

	return nil
}
