package models

import "time"

// Student is a festival participant. ChestNumber is the globally unique
// badge id printed on the participant card. TotalPoints is a denormalized
// counter maintained incrementally by the result workflow; it is never
// recomputed from scratch during normal operation.
type Student struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ChestNumber int        `json:"chest_number" gorm:"uniqueIndex;not null"`
	FirstName   string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName    string     `json:"last_name" gorm:"not null" validate:"required"`
	Gender      string     `json:"gender,omitempty" gorm:"type:varchar(10)"`
	TeamID      string     `json:"team_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TotalPoints int        `json:"total_points" gorm:"not null;default:0"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Team        *Team      `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
