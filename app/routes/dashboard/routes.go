package dashboard

import (
	"database/sql"

	"festrack/app/database"
	"festrack/app/models"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/api/dashboard/stats", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, db)
	})

	app.Get("/dashboard", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		stats, err := database.GetDashboardStats(db)
		if err != nil {
			return c.Status(500).Render("error", fiber.Map{
				"Title": "Error",
				"Error": "Failed to load dashboard",
			})
		}

		user := c.Locals("user").(*models.User)
		return c.Render("dashboard/index", fiber.Map{
			"Title":       "Dashboard",
			"CurrentPage": "dashboard",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
			"Stats":       stats,
		})
	})
}

func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}
