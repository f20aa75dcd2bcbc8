package controllers

import (
	"errors"
	"net/http"

	"gympro-backend/notify"
	"gympro-backend/repository"
	"gympro-backend/services"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
)

// RenewInput carries the renewal form. PaidAmount is a pointer so an explicit
// zero passes the required check.
type RenewInput struct {
	ExpireDate string   `json:"expireDate" binding:"required"`
	PaidAmount *float64 `json:"paidAmount" binding:"required"`
}

type BatchRenewInput struct {
	CustomerIDs []uint   `json:"customerIds" binding:"required,min=1"`
	ExpireDate  string   `json:"expireDate" binding:"required"`
	PaidAmount  *float64 `json:"paidAmount" binding:"required"`
}

type RenewalController struct {
	Renewals   *services.RenewalService
	Customers  *repository.CustomerRepository
	Dispatcher *notify.Dispatcher
}

func NewRenewalController(renewals *services.RenewalService, customers *repository.CustomerRepository, dispatcher *notify.Dispatcher) *RenewalController {
	return &RenewalController{Renewals: renewals, Customers: customers, Dispatcher: dispatcher}
}

// RenewCustomer extends one membership and records the payment. The renewal
// confirmation message is fire-and-forget: a dispatch failure shows up as
// notified=false but never fails the renewal.
func (rc *RenewalController) RenewCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	staffID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input RenewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Expire date and paid amount are required")
		return
	}

	expireDate, err := utils.ParseDate(input.ExpireDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expire date format")
		return
	}

	result, err := rc.Renewals.Renew(id, expireDate, *input.PaidAmount, staffID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		case errors.Is(err, services.ErrInvalidAmount):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to renew customer")
		}
		return
	}

	if rc.Dispatcher != nil && result.Customer.Phone != nil {
		rc.Dispatcher.SendAsync(result.Customer, notify.TypeRenewal)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Customer renewed successfully",
		"customer": result.Customer,
		"payment":  result.Payment,
	})
}

// RenewBatch renews several customers in one request, reporting an outcome
// per customer.
func (rc *RenewalController) RenewBatch(c *gin.Context) {
	staffID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input BatchRenewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	expireDate, err := utils.ParseDate(input.ExpireDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expire date format")
		return
	}

	outcomes := rc.Renewals.RenewBatch(input.CustomerIDs, expireDate, *input.PaidAmount, staffID)

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Success {
			succeeded++
			if rc.Dispatcher != nil && outcome.Customer != nil && outcome.Customer.Phone != nil {
				rc.Dispatcher.SendAsync(outcome.Customer, notify.TypeRenewal)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   outcomes,
		"succeeded": succeeded,
		"failed":    len(outcomes) - succeeded,
	})
}
