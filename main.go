package main

import (
	"encoding/json"
	"log"

	"festrack/app/config"
	"festrack/app/database"
	"festrack/app/realtime"
	"festrack/app/routes/auth"
	"festrack/app/routes/dashboard"
	"festrack/app/routes/juries"
	"festrack/app/routes/programs"
	"festrack/app/routes/results"
	"festrack/app/routes/scoreboard"
	"festrack/app/routes/settings"
	"festrack/app/routes/students"
	"festrack/app/routes/teams"
	"festrack/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Check if this is an API request
	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	// Handle different error codes for web requests
	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - Festrack",
			"CurrentPage": "",
		})
	case 403:
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - Festrack",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	case 401:
		return c.Status(401).Render("error", fiber.Map{
			"Title":        "Unauthorized - Festrack",
			"CurrentPage":  "",
			"ErrorCode":    "401",
			"ErrorTitle":   "Unauthorized",
			"ErrorMessage": "Please log in to access this resource.",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - Festrack",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - Festrack",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Seed roles and default settings
	if err := database.Seed(config.GetDB()); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Realtime hub for live scoreboard pushes
	hub := realtime.NewHub()

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	engine.Reload(true) // Enable template reloading for development
	engine.Debug(false) // Disable debug mode to reduce verbose logs

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/static", "./static")
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendFile("./static/favicon.ico")
	})

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/scoreboard")
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app, config.GetDB())

	// Setup students routes
	students.SetupStudentsRoutes(app)

	// Setup teams routes
	teams.SetupTeamsRoutes(app, config.GetDB())

	// Setup programs routes
	programs.SetupProgramsRoutes(app, config.GetDB())

	// Setup juries routes
	juries.SetupJuriesRoutes(app, config.GetDB())

	// Setup results routes
	results.SetupResultsRoutes(app, config.GetDB(), hub)

	// Setup public scoreboard routes
	scoreboard.SetupScoreboardRoutes(app, config.GetDB())

	// Setup settings routes
	settings.SetupSettingsRoutes(app, config.GetDB())

	// Websocket endpoint for live updates
	realtime.SetupRealtimeRoutes(app, hub)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Start server
	addr := config.ListenAddr()
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
