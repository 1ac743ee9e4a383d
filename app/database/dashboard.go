package database

import (
	"database/sql"
	"fmt"
	"time"

	"festrack/app/models"
)

// GetDashboardStats returns statistics for the admin dashboard
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	// 1. Total Students
	err := db.QueryRow("SELECT COUNT(*) FROM students WHERE is_active = true AND deleted_at IS NULL").Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	// 2. Total Teams
	err = db.QueryRow("SELECT COUNT(*) FROM teams WHERE is_active = true AND deleted_at IS NULL").Scan(&stats.TotalTeams)
	if err != nil {
		return nil, err
	}

	// 3. Total Programs
	err = db.QueryRow("SELECT COUNT(*) FROM programs WHERE is_active = true AND deleted_at IS NULL").Scan(&stats.TotalPrograms)
	if err != nil {
		return nil, err
	}

	// 4. Juries
	err = db.QueryRow(`
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		JOIN roles r ON ur.role_id = r.id
		WHERE r.name = 'jury' AND u.is_active = true
	`).Scan(&stats.TotalJuries)
	if err != nil {
		return nil, err
	}

	// 5. Result progress
	err = db.QueryRow("SELECT COUNT(*) FROM results WHERE status = 'pending'").Scan(&stats.PendingResults)
	if err != nil {
		return nil, err
	}
	err = db.QueryRow("SELECT COUNT(*) FROM results WHERE status = 'approved'").Scan(&stats.ApprovedResults)
	if err != nil {
		return nil, err
	}
	if stats.TotalPrograms > 0 {
		stats.CompletionRate = float64(stats.ApprovedResults) / float64(stats.TotalPrograms) * 100
	}

	activities, err := getRecentActivities(db)
	if err != nil {
		return nil, err
	}
	stats.RecentActivities = activities

	return stats, nil
}

// getRecentActivities builds the activity feed from recent notifications and
// result submissions.
func getRecentActivities(db *sql.DB) ([]models.Activity, error) {
	query := `
		SELECT n.title, COALESCE(n.body, ''), n.created_at
		FROM notifications n
		ORDER BY n.created_at DESC
		LIMIT 6
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.Title, &a.Description, &a.RawTime); err != nil {
			return nil, err
		}
		a.Type = "notification"
		a.Icon = "bell"
		a.Color = "blue"
		a.TimeAgo = timeAgo(a.RawTime)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
