package models

import "time"

// AssignedProgram is a jury's evaluation duty for one program, unique per
// (program, jury) pair. Status transitions are driven only by the result
// workflow: submit moves it to submitted, approve to completed, reject back
// to pending, and deleting an approved result back to submitted.
type AssignedProgram struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProgramID string           `json:"program_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	JuryID    string           `json:"jury_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status    AssignmentStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	Program   *Program         `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
	Jury      *User            `json:"jury,omitempty" gorm:"foreignKey:JuryID;references:ID"`
}
