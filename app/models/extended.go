package models

import "time"

// DashboardStats aggregates the numbers shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents    int        `json:"total_students"`
	TotalTeams       int        `json:"total_teams"`
	TotalPrograms    int        `json:"total_programs"`
	TotalJuries      int        `json:"total_juries"`
	PendingResults   int        `json:"pending_results"`
	ApprovedResults  int        `json:"approved_results"`
	CompletionRate   float64    `json:"completion_rate"`
	RecentActivities []Activity `json:"recent_activities"`
}

type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeAgo     string    `json:"time_ago"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	RawTime     time.Time `json:"-"`
}

// TeamStanding is one row of the public team scoreboard.
type TeamStanding struct {
	Rank        int    `json:"rank"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TeamCode    string `json:"team_code"`
	TotalPoints int    `json:"total_points"`
}

// StudentStanding is one row of the top-students board.
type StudentStanding struct {
	Rank        int    `json:"rank"`
	StudentID   string `json:"student_id"`
	ChestNumber int    `json:"chest_number"`
	Name        string `json:"name"`
	TeamName    string `json:"team_name"`
	TotalPoints int    `json:"total_points"`
}

// AssignmentView extends AssignedProgram with display fields for the jury
// dashboard and admin assignment tables.
type AssignmentView struct {
	AssignedProgram
	ProgramName string  `json:"program_name"`
	ProgramCode string  `json:"program_code"`
	Section     Section `json:"section"`
	JuryName    string  `json:"jury_name"`
}
