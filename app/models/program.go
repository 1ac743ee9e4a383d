package models

import "time"

// Program is a single competition item in the festival. Its section and
// category pick the scoring table used at result time; already-approved
// results keep their precomputed scores even if the program is later edited.
type Program struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name           string     `json:"name" gorm:"not null" validate:"required"`
	Code           string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Section        Section    `json:"section" gorm:"not null" validate:"required,oneof=single group general"`
	Category       Category   `json:"category" gorm:"not null;default:'none'" validate:"required,oneof=A B C none"`
	Stage          bool       `json:"stage" gorm:"default:false"`
	CandidateLimit int        `json:"candidate_limit" gorm:"not null;default:1" validate:"gte=1"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	RegistrationCount int           `json:"registration_count" gorm:"-"`
	Registrations     []*ProgramReg `json:"registrations,omitempty" gorm:"-"`
}

// ProgramReg links a student to a program they compete in.
type ProgramReg struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProgramID string    `json:"program_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID string    `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Program   *Program  `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
	Student   *Student  `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
