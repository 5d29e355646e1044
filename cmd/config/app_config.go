package config

import (
	"os"
	"time"

	"Maqal-Backend/internal/api/handlers"
	"Maqal-Backend/internal/api/routes"
	"Maqal-Backend/internal/middleware"
	"Maqal-Backend/internal/utils"
	"Maqal-Backend/internal/utils/storage"
	"Maqal-Backend/pkg/content"
	"Maqal-Backend/pkg/jwt"
	"Maqal-Backend/pkg/payment"
	"Maqal-Backend/pkg/paystack"
	"Maqal-Backend/pkg/user"
	"Maqal-Backend/pkg/waafi"
	"Maqal-Backend/pkg/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.NewValidator()

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Mogadishu",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	walletRepository := wallet.NewWalletRepository(db)
	contentRepository := content.NewContentRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	walletService := wallet.NewWalletService(walletRepository)
	contentService := content.NewContentService(contentRepository, walletRepository, s3)
	paystackService := paystack.NewPaystackService(utils.GetConfig("PAYSTACK_SECRET_KEY"), "")
	waafiService := waafi.NewWaafiService(
		utils.GetConfig("WAAFI_MERCHANT_UID"),
		utils.GetConfig("WAAFI_API_USER_ID"),
		utils.GetConfig("WAAFI_API_KEY"),
		"",
	)
	paymentService := payment.NewPaymentService(
		walletRepository,
		walletService,
		paystackService,
		waafiService,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	contentHandler := handlers.NewContentHandler(contentService, validator)
	coinHandler := handlers.NewCoinHandler(walletService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ContentHandler: contentHandler,
		CoinHandler:    coinHandler,
		PaymentHandler: paymentHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
