package juries

import (
	"database/sql"

	"festrack/app/models"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupJuriesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/juries", auth.AuthMiddleware)

	api.Get("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return GetJuriesAPI(c, db)
	})
	api.Post("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return CreateJuryAPI(c, db)
	})

	api.Get("/assignments", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return GetAssignmentsAPI(c, db)
	})
	api.Get("/assignments/mine", auth.RequireRole(models.RoleJury), func(c *fiber.Ctx) error {
		return GetMyAssignmentsAPI(c, db)
	})
	api.Post("/assignments", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return AssignProgramAPI(c, db)
	})
	api.Post("/assignments/bulk", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return BulkAssignAPI(c, db)
	})
	api.Delete("/assignments/:programId/:juryId", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return UnassignProgramAPI(c, db)
	})

	app.Get("/juries", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("juries/index", fiber.Map{
			"Title":       "Juries",
			"CurrentPage": "juries",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})

	app.Get("/assignments", auth.AuthMiddleware, auth.RequireRole(models.RoleJury), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("juries/assignments", fiber.Map{
			"Title":       "My Assignments",
			"CurrentPage": "assignments",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})
}
