package results

import "errors"

// Workflow error kinds. Handlers branch on these with errors.Is instead of
// matching message text.
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrJuryNotFound         = errors.New("jury not found")
	ErrResultNotFound       = errors.New("result not found")
	ErrDuplicatePending     = errors.New("a result for this program is already pending approval")
	ErrDuplicateApproved    = errors.New("a result for this program has already been published")
	ErrInvalidCandidate     = errors.New("winner does not resolve to a registered student or team")
	ErrInvalidPenaltyTarget = errors.New("penalty target does not resolve to a student or team")
	ErrValidation           = errors.New("invalid result payload")
)
