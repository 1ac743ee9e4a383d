package juries

import (
	"database/sql"
	"fmt"

	"festrack/app/database"
	"festrack/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetJuriesAPI(c *fiber.Ctx, db *sql.DB) error {
	juries, err := database.GetUsersByRole(db, models.RoleJury)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch juries"})
	}

	return c.JSON(fiber.Map{
		"juries": juries,
		"count":  len(juries),
	})
}

func CreateJuryAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateJuryRequest struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}

	var req CreateJuryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email, first_name and last_name are required"})
	}
	if len(req.Password) < 8 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}

	jury := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}

	if err := database.CreateUser(db, jury, models.RoleJury); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "A user with this email already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create jury"})
	}
	jury.Password = ""

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"jury":    jury,
	})
}

// AssignProgramAPI assigns one program to one jury.
func AssignProgramAPI(c *fiber.Ctx, db *sql.DB) error {
	type AssignRequest struct {
		ProgramID string `json:"program_id"`
		JuryID    string `json:"jury_id"`
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.ProgramID == "" || req.JuryID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "program_id and jury_id are required"})
	}

	assignment, err := AssignProgram(db, req.ProgramID, req.JuryID)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"assignment": assignment,
	})
}

// BulkAssignAPI assigns many programs to one jury. Each item is attempted
// independently; successes and failures are aggregated into a summary.
func BulkAssignAPI(c *fiber.Ctx, db *sql.DB) error {
	type BulkAssignRequest struct {
		JuryID     string   `json:"jury_id"`
		ProgramIDs []string `json:"program_ids"`
	}

	var req BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.JuryID == "" || len(req.ProgramIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "jury_id and program_ids are required"})
	}

	var assigned int
	var failures []string
	for _, programID := range req.ProgramIDs {
		if _, err := AssignProgram(db, programID, req.JuryID); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", programID, err))
			continue
		}
		assigned++
	}

	return c.JSON(fiber.Map{
		"success":  len(failures) == 0,
		"assigned": assigned,
		"failed":   len(failures),
		"errors":   failures,
		"message":  fmt.Sprintf("Assigned %d of %d programs", assigned, len(req.ProgramIDs)),
	})
}

func UnassignProgramAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := UnassignProgram(db, c.Params("programId"), c.Params("juryId")); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyAssignmentsAPI lists the logged-in jury's assignments.
func GetMyAssignmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	juryID := c.Locals("user_id").(string)
	assignments, err := GetAssignmentsByJury(db, juryID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

func GetAssignmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	juryID := c.Query("jury_id")

	var (
		assignments []*models.AssignmentView
		err         error
	)
	if juryID != "" {
		assignments, err = GetAssignmentsByJury(db, juryID)
	} else {
		assignments, err = GetAllAssignments(db)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"count":       len(assignments),
	})
}
