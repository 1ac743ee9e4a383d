package teams

import (
	"database/sql"

	"festrack/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetTeamsAPI(c *fiber.Ctx, db *sql.DB) error {
	teams, err := GetAllTeams(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teams"})
	}

	return c.JSON(fiber.Map{
		"teams": teams,
		"count": len(teams),
	})
}

func GetTeamAPI(c *fiber.Ctx, db *sql.DB) error {
	team, err := GetTeamByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Team not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch team"})
	}
	return c.JSON(team)
}

func CreateTeamAPI(c *fiber.Ctx, db *sql.DB) error {
	type CreateTeamRequest struct {
		Name      string  `json:"name"`
		Code      string  `json:"code"`
		ManagerID *string `json:"manager_id,omitempty"`
	}

	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.Name == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Team name and code are required"})
	}

	team := &models.Team{
		Name:      req.Name,
		Code:      req.Code,
		ManagerID: req.ManagerID,
		IsActive:  true,
	}

	if err := CreateTeam(db, team); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create team"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

func UpdateTeamAPI(c *fiber.Ctx, db *sql.DB) error {
	var team models.Team
	if err := c.BodyParser(&team); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	team.ID = c.Params("id")

	if team.Name == "" || team.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Team name and code are required"})
	}

	if err := UpdateTeam(db, &team); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update team"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

func DeleteTeamAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := DeleteTeam(db, c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete team"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
