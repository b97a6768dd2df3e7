package routes

import (
	"time"

	"github.com/bitwatch/bitwatch-api/internal/config"
	"github.com/bitwatch/bitwatch-api/internal/handlers"
	"github.com/bitwatch/bitwatch-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	users := api.Group("/users")

	// Stricter limit on the endpoints that send mail or check credentials:
	// 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	users.Post("/email-verification", authLimiter, userHandler.RequestEmailVerification)
	users.Post("/signup", authLimiter, userHandler.SignUp)
	users.Post("/signin", authLimiter, userHandler.SignIn)
	users.Post("/signout", userHandler.SignOut)
	users.Post("/refresh", userHandler.Refresh)

	// Protected routes (bearer access token required)
	users.Post("/reissue-user", middleware.JWTProtected(cfg), userHandler.ReissueUser)
	users.Get("/all", middleware.JWTProtected(cfg), userHandler.ListUsers)
}
