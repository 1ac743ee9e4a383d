package students

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"festrack/app/config"
	"festrack/app/models"

	"github.com/gofiber/fiber/v2"
)

// ImportStudentsAPI bulk-imports students from an uploaded CSV with the
// columns first_name,last_name,gender,team_code (header row optional).
// Rows are attempted independently; failures are collected into a summary
// rather than aborting the whole upload.
func ImportStudentsAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "CSV file is required (field name: file)"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	db := config.GetDB()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var imported int
	var failures []string
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			failures = append(failures, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) < 4 {
			failures = append(failures, fmt.Sprintf("line %d: expected 4 columns, got %d", line, len(record)))
			continue
		}

		firstName := strings.TrimSpace(record[0])
		lastName := strings.TrimSpace(record[1])
		gender := strings.TrimSpace(record[2])
		teamCode := strings.TrimSpace(record[3])

		// Skip a header row
		if line == 1 && strings.EqualFold(firstName, "first_name") {
			continue
		}

		if firstName == "" || lastName == "" || teamCode == "" {
			failures = append(failures, fmt.Sprintf("line %d: first_name, last_name and team_code are required", line))
			continue
		}

		team, err := GetTeamByCode(db, teamCode)
		if err != nil {
			failures = append(failures, fmt.Sprintf("line %d: unknown team code %q", line, teamCode))
			continue
		}

		student := &models.Student{
			FirstName: firstName,
			LastName:  lastName,
			Gender:    gender,
			TeamID:    team.ID,
			IsActive:  true,
		}
		if err := CreateStudent(db, student); err != nil {
			failures = append(failures, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		imported++
	}

	return c.JSON(fiber.Map{
		"success":  len(failures) == 0,
		"imported": imported,
		"failed":   len(failures),
		"errors":   failures,
	})
}
