package models

// Section defines the shape of a program: who competes and how it is scored.
type Section string

const (
	SectionSingle  Section = "single"
	SectionGroup   Section = "group"
	SectionGeneral Section = "general"
)

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	switch s {
	case SectionSingle, SectionGroup, SectionGeneral:
		return true
	}
	return false
}

// Category is the competitive tier of a program. It affects scoring for
// single-section programs only.
type Category string

const (
	CategoryA    Category = "A"
	CategoryB    Category = "B"
	CategoryC    Category = "C"
	CategoryNone Category = "none"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC, CategoryNone:
		return true
	}
	return false
}

// Grade is the per-winner bonus tier awarded independently of placement.
// Only single-section entries carry a grade; group and general entries are
// always stored with GradeNone.
type Grade string

const (
	GradeA    Grade = "A"
	GradeB    Grade = "B"
	GradeC    Grade = "C"
	GradeNone Grade = "none"
)

func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeNone:
		return true
	}
	return false
}

// ResultStatus is the lifecycle state of a result record. Pending and
// approved records live in the same table; approval flips the status in
// place so the unique index on program_id covers both states.
type ResultStatus string

const (
	ResultPending  ResultStatus = "pending"
	ResultApproved ResultStatus = "approved"
)

// AssignmentStatus tracks a jury's progress on an assigned program. It is
// driven exclusively by result workflow transitions.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentSubmitted AssignmentStatus = "submitted"
	AssignmentCompleted AssignmentStatus = "completed"
)

// Role names used across the app.
const (
	RoleAdmin       = "admin"
	RoleJury        = "jury"
	RoleTeamManager = "team_manager"
)
