package controllers

import (
	"errors"
	"net/http"
	"time"

	"gympro-backend/models"
	"gympro-backend/repository"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
)

// RecordPaymentInput is a manual payment entry. Balance is the customer's
// balance at the time of payment, snapshotted by the caller.
type RecordPaymentInput struct {
	CustomerID uint     `json:"customerId" binding:"required"`
	PaidAmount *float64 `json:"paidAmount" binding:"required"`
	Discount   float64  `json:"discount"`
	Balance    *float64 `json:"balance" binding:"required"`
	Date       string   `json:"date"`
}

type ReportInput struct {
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
}

type PaymentController struct {
	Payments  *repository.PaymentRepository
	Customers *repository.CustomerRepository
}

func NewPaymentController(payments *repository.PaymentRepository, customers *repository.CustomerRepository) *PaymentController {
	return &PaymentController{Payments: payments, Customers: customers}
}

// RecordPayment creates a manual payment entry for a customer.
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	staffID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer ID, paid amount, and balance are required")
		return
	}

	if *input.PaidAmount < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Paid amount must be non-negative")
		return
	}

	if _, err := pc.Customers.GetByID(input.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := utils.ParseDate(input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment date format")
			return
		}
		date = parsed
	}

	payment := models.Payment{
		CustomerID: input.CustomerID,
		UserID:     staffID,
		PaidAmount: *input.PaidAmount,
		Discount:   input.Discount,
		Balance:    *input.Balance,
		Date:       date,
	}

	if err := pc.Payments.Create(&payment); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists every payment, newest first.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	payments, err := pc.Payments.ListAll()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetCustomerPayments pages one customer's payment history.
func (pc *PaymentController) GetCustomerPayments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "limit", 5)

	payments, err := pc.Payments.ListByCustomer(id, page, pageSize)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetReport aggregates payments over a date range.
func (pc *PaymentController) GetReport(c *gin.Context) {
	var input ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Start date and end date are required")
		return
	}

	start, err := utils.ParseDate(input.StartDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date format")
		return
	}
	end, err := utils.ParseDate(input.EndDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date format")
		return
	}

	payments, totals, err := pc.Payments.Report(start, end, input.CustomerName, input.Phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch payments report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"totals":   totals,
		"period": gin.H{
			"startDate": start,
			"endDate":   end,
		},
	})
}
