package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"logistics-web/internal/config"
)

func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Web routes (HTML)
	web := app.Group("")
	setupWebRoutes(web)

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, db, redis, cfg)
}

func setupWebRoutes(router fiber.Router) {
	// Authentication pages
	router.Get("/login", func(c *fiber.Ctx) error {
		return c.Render("auth/login", fiber.Map{
			"Title": "Login",
		})
	})

	router.Get("/register", func(c *fiber.Ctx) error {
		return c.Render("auth/register", fiber.Map{
			"Title": "Register",
		})
	})

	// Dashboard
	router.Get("/", func(c *fiber.Ctx) error {
		return c.Render("dashboard/index", fiber.Map{
			"Title": "Dashboard",
		})
	})

	// Operations pages
	router.Get("/shipments", func(c *fiber.Ctx) error {
		return c.Render("shipments/index", fiber.Map{
			"Title": "Shipments",
		})
	})

	router.Get("/customers", func(c *fiber.Ctx) error {
		return c.Render("customers/index", fiber.Map{
			"Title": "Customers",
		})
	})

	// Finance pages
	router.Get("/finance", func(c *fiber.Ctx) error {
		return c.Render("finance/index", fiber.Map{
			"Title": "Finance",
		})
	})

	router.Get("/advances", func(c *fiber.Ctx) error {
		return c.Render("finance/advances", fiber.Map{
			"Title": "Advances",
		})
	})

	router.Get("/payroll", func(c *fiber.Ctx) error {
		return c.Render("finance/payroll", fiber.Map{
			"Title": "Payroll",
		})
	})

	// Import pages
	router.Get("/imports", func(c *fiber.Ctx) error {
		return c.Render("imports/index", fiber.Map{
			"Title": "Import Sessions",
		})
	})

	router.Get("/imports/new", func(c *fiber.Ctx) error {
		return c.Render("imports/new", fiber.Map{
			"Title": "New Import",
		})
	})

	router.Get("/imports/:id", func(c *fiber.Ctx) error {
		return c.Render("imports/detail", fiber.Map{
			"Title": "Import Detail",
		})
	})

	// Public tracking page
	router.Get("/track/:reference", func(c *fiber.Ctx) error {
		return c.Render("tracking/index", fiber.Map{
			"Title":     "Shipment Tracking",
			"Reference": c.Params("reference"),
		})
	})
}
