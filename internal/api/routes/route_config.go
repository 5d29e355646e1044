package routes

import (
	"Maqal-Backend/internal/api/handlers"
	"Maqal-Backend/internal/middleware"
	"Maqal-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ContentHandler handlers.ContentHandler
	CoinHandler    handlers.CoinHandler
	PaymentHandler handlers.PaymentHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Content()
	c.Coins()
	c.Payments()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Content() {
	contents := c.App.Group("/api/v1/contents", c.Middleware.AuthMiddleware(c.JWTService))
	contents.Get("", c.ContentHandler.GetContents)
	contents.Get("/:id", c.ContentHandler.GetContentDetails)
	contents.Post("/:id/access", c.ContentHandler.AccessContent)
	contents.Post("/:id/like", c.ContentHandler.ToggleLike)
	contents.Post("/:id/save", c.ContentHandler.ToggleSave)

	c.App.Get("/api/v1/library", c.Middleware.AuthMiddleware(c.JWTService), c.ContentHandler.GetLibrary)

	admin := c.App.Group("/api/v1/admin/contents", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware())
	admin.Post("", c.ContentHandler.CreateContent)
	admin.Put("/:id", c.ContentHandler.UpdateContent)
	admin.Delete("/:id", c.ContentHandler.DeleteContent)
	admin.Post("/media", c.ContentHandler.UploadMedia)
}

func (c *Config) Coins() {
	coins := c.App.Group("/api/v1/coins", c.Middleware.AuthMiddleware(c.JWTService))
	coins.Get("/packages", c.CoinHandler.GetCoinPackages)
	coins.Get("/balance", c.CoinHandler.GetBalance)
	coins.Get("/history", c.CoinHandler.GetPaymentHistory)
}

func (c *Config) Payments() {
	payments := c.App.Group("/api/v1/payments", c.Middleware.AuthMiddleware(c.JWTService))
	payments.Post("/paystack/initiate", c.PaymentHandler.InitiatePaystack)
	payments.Get("/paystack/verify/:reference", c.PaymentHandler.VerifyPaystack)
	payments.Post("/waafi/initiate", c.PaymentHandler.InitiateWaafi)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
	c.App.Post("/webhook/paystack", c.PaymentHandler.PaystackWebhook)
	c.App.Post("/webhook/waafi", c.PaymentHandler.WaafiCallback)
}
