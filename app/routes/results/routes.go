package results

import (
	"database/sql"

	"festrack/app/models"
	"festrack/app/realtime"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupResultsRoutes sets up all result-workflow routes
func SetupResultsRoutes(app *fiber.App, db *sql.DB, pub realtime.Publisher) {
	api := app.Group("/api/results")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetResultsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetResultAPI(c, db) })
	api.Post("/", auth.RequireRole(models.RoleJury, models.RoleAdmin), func(c *fiber.Ctx) error {
		return SubmitResultAPI(c, db, pub)
	})
	api.Put("/:id", auth.RequireRole(models.RoleJury, models.RoleAdmin), func(c *fiber.Ctx) error {
		return UpdateResultAPI(c, db, pub)
	})
	api.Post("/:id/approve", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return ApproveResultAPI(c, db, pub)
	})
	api.Post("/:id/reject", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return RejectResultAPI(c, db, pub)
	})
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return DeleteResultAPI(c, db, pub)
	})

	// Result entry page for juries
	app.Get("/results/submit/:programId", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("results/submit", fiber.Map{
			"Title":       "Submit Result",
			"CurrentPage": "results",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
			"programID":   c.Params("programId"),
		})
	})

	// Review page for admins: pending results awaiting approval
	app.Get("/results/review", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("results/review", fiber.Map{
			"Title":       "Review Results",
			"CurrentPage": "results",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})
}
