package programs

import (
	"database/sql"
	"errors"

	"festrack/app/database"
	"festrack/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetProgramsAPI(c *fiber.Ctx, db *sql.DB) error {
	programs, err := GetAllPrograms(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch programs"})
	}

	return c.JSON(fiber.Map{
		"programs": programs,
		"count":    len(programs),
	})
}

func GetProgramAPI(c *fiber.Ctx, db *sql.DB) error {
	program, err := database.GetProgramByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Program not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch program"})
	}

	return c.JSON(fiber.Map{"program": program})
}

func CreateProgramAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateProgramRequest struct {
		Name           string          `json:"name" validate:"required"`
		Code           string          `json:"code" validate:"required"`
		Section        models.Section  `json:"section" validate:"required,oneof=single group general"`
		Category       models.Category `json:"category" validate:"omitempty,oneof=A B C none"`
		Stage          bool            `json:"stage"`
		CandidateLimit int             `json:"candidate_limit" validate:"omitempty,gte=1"`
	}

	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Category == "" {
		req.Category = models.CategoryNone
	}
	if req.CandidateLimit == 0 {
		req.CandidateLimit = 1
	}

	program := &models.Program{
		Name:           req.Name,
		Code:           req.Code,
		Section:        req.Section,
		Category:       req.Category,
		Stage:          req.Stage,
		CandidateLimit: req.CandidateLimit,
		IsActive:       true,
	}

	if err := CreateProgram(db, program); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create program"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"program": program,
	})
}

func UpdateProgramAPI(c *fiber.Ctx, db *sql.DB) error {
	var program models.Program
	if err := c.BodyParser(&program); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	program.ID = c.Params("id")

	if !program.Section.Valid() || !program.Category.Valid() || program.CandidateLimit < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid section, category or candidate limit"})
	}

	if err := UpdateProgram(db, &program); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update program"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"program": program,
	})
}

func DeleteProgramAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := DeleteProgram(db, c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete program"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterStudentAPI registers a student into a program.
func RegisterStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	type RegisterRequest struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	reg, err := RegisterStudent(db, c.Params("id"), req.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCandidateLimit), errors.Is(err, ErrStageLimit), errors.Is(err, ErrSectionMismatch):
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrAlreadyRegistered):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to register student"})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"registration": reg,
	})
}

func UnregisterStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := UnregisterStudent(db, c.Params("id"), c.Params("studentId")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove registration"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetRegistrationsAPI(c *fiber.Ctx, db *sql.DB) error {
	regs, err := GetRegistrationsByProgram(db, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch registrations"})
	}

	return c.JSON(fiber.Map{
		"registrations": regs,
		"count":         len(regs),
	})
}
