package routes

import (
	"os"
	"strings"

	"gympro-backend/config"
	"gympro-backend/controllers"
	"gympro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Customers     *controllers.CustomerController
	Renewals      *controllers.RenewalController
	Payments      *controllers.PaymentController
	Notifications *controllers.NotificationController
}

func SetupRouter(ctrl Controllers, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(log))

	auth := r.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", ctrl.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Staff user routes
		users := api.Group("/users")
		{
			users.POST("", ctrl.Users.CreateUser)
			users.GET("", ctrl.Users.GetUsers)
			users.DELETE("/:id", ctrl.Users.DeleteUser)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", ctrl.Customers.CreateCustomer)
			customers.GET("", ctrl.Customers.GetCustomers)
			customers.GET("/stats", ctrl.Customers.GetCustomerStats)
			customers.POST("/renew-batch", ctrl.Renewals.RenewBatch)
			customers.GET("/:id", ctrl.Customers.GetCustomer)
			customers.PUT("/:id", ctrl.Customers.UpdateCustomer)
			customers.DELETE("/:id", ctrl.Customers.DeleteCustomer)
			customers.POST("/:id/renew", ctrl.Renewals.RenewCustomer)
			customers.GET("/:id/payments", ctrl.Payments.GetCustomerPayments)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("", ctrl.Payments.RecordPayment)
			payments.GET("", ctrl.Payments.GetPayments)
			payments.POST("/report", ctrl.Payments.GetReport)
		}

		// Notification routes
		api.POST("/notifications/send", ctrl.Notifications.Send)
	}

	return r
}

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		parts := strings.Split(env, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		if len(origins) > 0 {
			return origins
		}
	}
	return []string{"http://localhost:3000"}
}
