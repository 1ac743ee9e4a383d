package scoreboard

import (
	"database/sql"

	"festrack/app/database"

	"github.com/gofiber/fiber/v2"
)

// SetupScoreboardRoutes registers the public live scoreboard. Everything
// here is readable without logging in.
func SetupScoreboardRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/scoreboard")

	api.Get("/teams", func(c *fiber.Ctx) error {
		return GetTeamStandingsAPI(c, db)
	})
	api.Get("/students", func(c *fiber.Ctx) error {
		return GetTopStudentsAPI(c, db)
	})
	api.Get("/results", func(c *fiber.Ctx) error {
		return GetPublishedResultsAPI(c, db)
	})
	api.Get("/notifications", func(c *fiber.Ctx) error {
		return GetNotificationsAPI(c, db)
	})

	app.Get("/scoreboard", func(c *fiber.Ctx) error {
		settings, err := database.GetSettings(db)
		festivalName := "Festrack"
		if err == nil && settings.FestivalName != "" {
			festivalName = settings.FestivalName
		}

		standings, err := GetTeamStandings(db)
		if err != nil {
			return c.Status(500).Render("error", fiber.Map{
				"Title": "Error",
				"Error": "Failed to load scoreboard",
			})
		}

		students, _ := GetTopStudents(db, 10)

		return c.Render("scoreboard/index", fiber.Map{
			"Title":        "Live Scoreboard",
			"FestivalName": festivalName,
			"Standings":    standings,
			"TopStudents":  students,
		})
	})

	app.Get("/scoreboard/results", func(c *fiber.Ctx) error {
		results, err := GetPublishedResults(db)
		if err != nil {
			return c.Status(500).Render("error", fiber.Map{
				"Title": "Error",
				"Error": "Failed to load results",
			})
		}

		return c.Render("scoreboard/results", fiber.Map{
			"Title":   "Published Results",
			"Results": results,
		})
	})
}
