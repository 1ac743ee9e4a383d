package models

import "time"

// Result is a program's result record. At most one result (pending or
// approved) exists per program at any time, enforced by a unique index on
// program_id. Approval flips Status in place; the record never moves
// between tables.
type Result struct {
	ID          string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ProgramID   string           `json:"program_id" gorm:"uniqueIndex;not null;type:uuid" validate:"required,uuid"`
	JuryID      string           `json:"jury_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubmittedBy string           `json:"submitted_by" gorm:"not null;type:uuid" validate:"required,uuid"`
	Status      ResultStatus     `json:"status" gorm:"not null;default:'pending'"`
	SubmittedAt time.Time        `json:"submitted_at" gorm:"not null"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	Entries     []*ResultEntry   `json:"entries,omitempty" gorm:"foreignKey:ResultID;references:ID"`
	Penalties   []*ResultPenalty `json:"penalties,omitempty" gorm:"foreignKey:ResultID;references:ID"`
	Program     *Program         `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
	Jury        *User            `json:"jury,omitempty" gorm:"foreignKey:JuryID;references:ID"`
}

// ResultEntry is one winner slot (positions 1..3). StudentID is set for
// single-section programs; TeamID is always set to the owning team so the
// ledger can be updated without a re-lookup. Score is precomputed at write
// time and stays stable even if scoring tables change later.
type ResultEntry struct {
	ID        string   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ResultID  string   `json:"result_id" gorm:"not null;index;type:uuid"`
	Position  int      `json:"position" gorm:"not null" validate:"gte=1,lte=3"`
	StudentID *string  `json:"student_id,omitempty" gorm:"index;type:uuid"`
	TeamID    string   `json:"team_id" gorm:"not null;index;type:uuid"`
	Grade     Grade    `json:"grade" gorm:"not null;default:'none'"`
	Score     int      `json:"score" gorm:"not null"`
	Student   *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Team      *Team    `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID"`
}

// ResultPenalty deducts points from a team. Penalties are always team-level:
// even when targeted at a student of a single-section program, the deduction
// lands on the owning team's total, never the student's own.
type ResultPenalty struct {
	ID        string   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ResultID  string   `json:"result_id" gorm:"not null;index;type:uuid"`
	StudentID *string  `json:"student_id,omitempty" gorm:"index;type:uuid"`
	TeamID    string   `json:"team_id" gorm:"not null;index;type:uuid"`
	Points    int      `json:"points" gorm:"not null" validate:"gte=0"`
	Reason    string   `json:"reason,omitempty"`
	Team      *Team    `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID"`
	Student   *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
