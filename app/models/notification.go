package models

import "time"

// Notification is a persisted announcement shown on the public feed.
// Program-scoped notifications are created when a result is published.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProgramID *string   `json:"program_id,omitempty" gorm:"index;type:uuid"`
	Title     string    `json:"title" gorm:"not null" validate:"required"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Program   *Program  `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
}

// Settings is the single-row festival configuration.
type Settings struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FestivalName    string    `json:"festival_name" gorm:"not null"`
	ChestNumberBase int       `json:"chest_number_base" gorm:"not null;default:100"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
