package results

import (
	"database/sql"
	"errors"

	"festrack/app/models"
	"festrack/app/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// errorResponse maps workflow error kinds to HTTP responses. Callers
// branch on kind, never on message text.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrProgramNotFound),
		errors.Is(err, ErrJuryNotFound),
		errors.Is(err, ErrResultNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDuplicatePending), errors.Is(err, ErrDuplicateApproved):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":             err.Error(),
			"already_published": errors.Is(err, ErrDuplicateApproved),
		})
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidCandidate),
		errors.Is(err, ErrInvalidPenaltyTarget):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process result"})
	}
}

// SubmitResultAPI handles a jury's result submission for a program.
func SubmitResultAPI(c *fiber.Ctx, db *sql.DB, pub realtime.Publisher) error {
	var in SubmitInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("user_id").(string)
	in.SubmittedBy = userID
	if in.JuryID == "" {
		in.JuryID = userID
	}

	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := SubmitResult(db, pub, in)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Result submitted and awaiting approval",
		"result":  result,
	})
}

// GetResultsAPI lists results, optionally filtered by status.
func GetResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	status := models.ResultStatus(c.Query("status"))
	if status != "" && status != models.ResultPending && status != models.ResultApproved {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown status filter"})
	}

	results, err := GetResultsByStatus(db, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch results"})
	}

	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
	})
}

// GetResultAPI returns one result with entries and penalties.
func GetResultAPI(c *fiber.Ctx, db *sql.DB) error {
	result, err := GetResultByID(db, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// ApproveResultAPI publishes a pending result and applies its scores.
func ApproveResultAPI(c *fiber.Ctx, db *sql.DB, pub realtime.Publisher) error {
	if err := ApproveResult(db, pub, c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Result approved and published",
	})
}

// RejectResultAPI discards a pending result.
func RejectResultAPI(c *fiber.Ctx, db *sql.DB, pub realtime.Publisher) error {
	if err := RejectResult(db, pub, c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Result rejected",
	})
}

// UpdateResultAPI rewrites a result's winners and penalties. Approved
// results get their old scores undone and the new ones applied.
func UpdateResultAPI(c *fiber.Ctx, db *sql.DB, pub realtime.Publisher) error {
	var req struct {
		Winners   []WinnerInput  `json:"winners"`
		Penalties []PenaltyInput `json:"penalties"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := UpdateResult(db, pub, c.Params("id"), req.Winners, req.Penalties)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Result updated",
		"result":  result,
	})
}

// DeleteResultAPI removes an approved result, reversing its ledger effects.
func DeleteResultAPI(c *fiber.Ctx, db *sql.DB, pub realtime.Publisher) error {
	if err := DeleteApprovedResult(db, pub, c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Result deleted and scores reversed",
	})
}
