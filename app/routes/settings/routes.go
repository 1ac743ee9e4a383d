package settings

import (
	"database/sql"

	"festrack/app/database"
	"festrack/app/models"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/settings", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin))

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSettingsAPI(c, db)
	})
	api.Put("/", func(c *fiber.Ctx) error {
		return UpdateSettingsAPI(c, db)
	})

	app.Get("/settings", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		s, err := database.GetSettings(db)
		if err != nil {
			return c.Status(500).Render("error", fiber.Map{
				"Title": "Error",
				"Error": "Failed to load settings",
			})
		}

		user := c.Locals("user").(*models.User)
		return c.Render("settings/index", fiber.Map{
			"Title":       "Settings",
			"CurrentPage": "settings",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
			"Settings":    s,
		})
	})
}

func GetSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	s, err := database.GetSettings(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(s)
}

func UpdateSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	type UpdateSettingsRequest struct {
		FestivalName    string `json:"festival_name"`
		ChestNumberBase int    `json:"chest_number_base"`
	}

	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.FestivalName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "festival_name is required"})
	}
	if req.ChestNumberBase < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "chest_number_base must be positive"})
	}

	s, err := database.GetSettings(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}

	s.FestivalName = req.FestivalName
	s.ChestNumberBase = req.ChestNumberBase
	if err := database.UpdateSettings(db, s); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update settings"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": s,
	})
}
