package scoreboard

import (
	"database/sql"
	"strconv"

	"festrack/app/database"

	"github.com/gofiber/fiber/v2"
)

func GetTeamStandingsAPI(c *fiber.Ctx, db *sql.DB) error {
	standings, err := GetTeamStandings(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch standings"})
	}

	return c.JSON(fiber.Map{
		"standings": standings,
		"count":     len(standings),
	})
}

func GetTopStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	standings, err := GetTopStudents(db, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top students"})
	}

	return c.JSON(fiber.Map{
		"students": standings,
		"count":    len(standings),
	})
}

func GetPublishedResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	results, err := GetPublishedResults(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch results"})
	}

	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
	})
}

func GetNotificationsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	notifications, err := database.GetRecentNotifications(db, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}
