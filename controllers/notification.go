package controllers

import (
	"errors"
	"net/http"

	"gympro-backend/notify"
	"gympro-backend/repository"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
)

type SendNotificationInput struct {
	CustomerID  uint   `json:"customerId" binding:"required"`
	MessageType string `json:"messageType" binding:"required,oneof=welcome payment renewal"`
}

// NotificationController lets staff trigger a message to a customer by hand.
type NotificationController struct {
	Customers  *repository.CustomerRepository
	Dispatcher *notify.Dispatcher
}

func NewNotificationController(customers *repository.CustomerRepository, dispatcher *notify.Dispatcher) *NotificationController {
	return &NotificationController{Customers: customers, Dispatcher: dispatcher}
}

// Send delivers the chosen template to the customer synchronously so the
// caller learns whether delivery worked.
func (nc *NotificationController) Send(c *gin.Context) {
	var input SendNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := nc.Customers.GetByID(input.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if customer.Phone == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer has no phone number on record")
		return
	}

	if err := nc.Dispatcher.Send(customer, notify.MessageType(input.MessageType)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
	})
}
