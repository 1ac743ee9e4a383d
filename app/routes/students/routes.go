package students

import (
	"festrack/app/models"
	"festrack/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentsRoutes sets up all students-related routes
func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)
	api.Get("/:id", GetStudentAPI)
	api.Post("/", auth.RequireRole(models.RoleAdmin, models.RoleTeamManager), CreateStudentAPI)
	api.Post("/import", auth.RequireRole(models.RoleAdmin), ImportStudentsAPI)
	api.Put("/:id", auth.RequireRole(models.RoleAdmin, models.RoleTeamManager), UpdateStudentAPI)
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin), DeleteStudentAPI)

	// Students management page
	app.Get("/students", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("students/index", fiber.Map{
			"Title":       "Students",
			"CurrentPage": "students",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"Email":       user.Email,
			"user":        user,
		})
	})
}
