package models

import "time"

// Team is a competing house/unit. TotalPoints mirrors the sum of all score
// deltas ever applied for the team's entries and penalties, net of undos.
type Team struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name         string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code         string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	ManagerID    *string    `json:"manager_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	TotalPoints  int        `json:"total_points" gorm:"not null;default:0"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	StudentCount int        `json:"student_count" gorm:"-"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Manager      *User      `json:"manager,omitempty" gorm:"foreignKey:ManagerID;references:ID"`
	Students     []*Student `json:"students,omitempty" gorm:"foreignKey:TeamID;references:ID"`
}
