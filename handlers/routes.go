package handlers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"expense-tracker-go-be/middleware"
	"expense-tracker-go-be/services"
)

// Deps is everything the HTTP edge needs.
type Deps struct {
	Auth         *services.AuthService
	Transactions *services.TransactionService
	Tokens       middleware.TokenVerifier
	// Ping reports store health for /api/health. Optional.
	Ping         func(ctx context.Context) error
	CookieSecure bool
	CORSOrigins  string
	AccessLog    io.Writer
	Log          zerolog.Logger
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "expense-tracker",
		ErrorHandler:          ErrorHandler(d.Log),
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	accessLog := d.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	origins := d.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: origins != "*",
	}))

	api := app.Group("/api")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		if d.Ping != nil {
			if err := d.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	session := middleware.RequireSession(d.Tokens)

	authHandler := NewAuthHandler(d.Auth, d.CookieSecure)
	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", session, authHandler.Logout)

	txnHandler := NewTransactionHandler(d.Transactions)
	tracker := api.Group("/tracker", session)
	tracker.Post("/transactions/create", txnHandler.Create)
	tracker.Get("/transactions/getAll", txnHandler.GetAll)
	tracker.Get("/transactions/get/:transactionId?", txnHandler.Get)
	tracker.Put("/transactions/update/:transactionId?", txnHandler.Update)
	tracker.Delete("/transactions/delete/:transactionId?", txnHandler.Delete)
	tracker.Get("/transactions/summary", txnHandler.Summary)
	tracker.Get("/categories", txnHandler.Categories)

	return app
}
