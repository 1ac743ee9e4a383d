package programs

import (
	"database/sql"

	"festrack/app/models"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupProgramsRoutes sets up all program-related routes
func SetupProgramsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/programs")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetProgramsAPI(c, db) })
	api.Get("/:id/registrations", func(c *fiber.Ctx) error { return GetRegistrationsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetProgramAPI(c, db) })
	api.Post("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateProgramAPI(c, db) })
	api.Put("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return UpdateProgramAPI(c, db) })
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return DeleteProgramAPI(c, db) })
	api.Post("/:id/registrations", auth.RequireRole(models.RoleAdmin, models.RoleTeamManager),
		func(c *fiber.Ctx) error { return RegisterStudentAPI(c, db) })
	api.Delete("/:id/registrations/:studentId", auth.RequireRole(models.RoleAdmin, models.RoleTeamManager),
		func(c *fiber.Ctx) error { return UnregisterStudentAPI(c, db) })

	// Programs management page
	app.Get("/programs", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("programs/index", fiber.Map{
			"Title":       "Programs",
			"CurrentPage": "programs",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})
}
