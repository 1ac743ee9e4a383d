package teams

import (
	"database/sql"

	"festrack/app/models"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupTeamsRoutes sets up all team-related routes
func SetupTeamsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/teams")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetTeamsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetTeamAPI(c, db) })
	api.Post("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateTeamAPI(c, db) })
	api.Put("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return UpdateTeamAPI(c, db) })
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return DeleteTeamAPI(c, db) })

	// Teams management page
	app.Get("/teams", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("teams/index", fiber.Map{
			"Title":       "Teams",
			"CurrentPage": "teams",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})
}
