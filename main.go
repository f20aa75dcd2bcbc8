package main

import (
	"fmt"
	"os"
	"strconv"

	"gympro-backend/config"
	"gympro-backend/controllers"
	"gympro-backend/media"
	"gympro-backend/membership"
	"gympro-backend/notify"
	"gympro-backend/repository"
	"gympro-backend/routes"
	"gympro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := config.NewLogger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		dsn = "gympro.db"
	}
	db, err := config.Open(dsn)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	horizonDays := membership.DefaultHorizonDays
	if env := os.Getenv("EXPIRY_HORIZON_DAYS"); env != "" {
		if days, err := strconv.Atoi(env); err == nil && days > 0 {
			horizonDays = days
		}
	}

	customerRepo := repository.NewCustomerRepository(db, horizonDays)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)

	whatsapp := notify.NewWhatsAppClient(
		os.Getenv("WHATSAPP_API_URL"),
		os.Getenv("WHATSAPP_TOKEN"),
		os.Getenv("WHATSAPP_INSTANCE_ID"),
	)
	sms := notify.NewSMSClient(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_PHONE_NUMBER"),
	)
	dispatcher := notify.NewDispatcher(db, whatsapp, sms, log)

	uploader := media.NewUploader(os.Getenv("MEDIA_UPLOAD_URL"), os.Getenv("MEDIA_API_KEY"))

	renewalService := services.NewRenewalService(db)
	reminderService := services.NewReminderService(customerRepo, dispatcher, log)
	if err := reminderService.StartScheduler(); err != nil {
		log.WithError(err).Fatal("failed to start reminder scheduler")
	}

	ctrl := routes.Controllers{
		Auth:          controllers.NewAuthController(userRepo),
		Users:         controllers.NewUserController(userRepo),
		Customers:     controllers.NewCustomerController(customerRepo, uploader, dispatcher, log, horizonDays),
		Renewals:      controllers.NewRenewalController(renewalService, customerRepo, dispatcher),
		Payments:      controllers.NewPaymentController(paymentRepo, customerRepo),
		Notifications: controllers.NewNotificationController(customerRepo, dispatcher),
	}

	r := routes.SetupRouter(ctrl, log)
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
