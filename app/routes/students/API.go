package students

import (
	"database/sql"

	"festrack/app/config"
	"festrack/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetStudentsAPI(c *fiber.Ctx) error {
	search := c.Query("search")
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	students, total, err := GetAllStudents(config.GetDB(), search, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students":    students,
		"count":       len(students),
		"total_count": total,
	})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(student)
}

func CreateStudentAPI(c *fiber.Ctx) error {
	type CreateStudentRequest struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Gender    string `json:"gender"`
		TeamID    string `json:"team_id" validate:"required,uuid"`
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	student := &models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		TeamID:    req.TeamID,
		IsActive:  true,
	}

	if err := CreateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	student.ID = c.Params("id")

	if student.FirstName == "" || student.LastName == "" || student.TeamID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "first_name, last_name and team_id are required"})
	}

	if err := UpdateStudent(config.GetDB(), &student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
