package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"gympro-backend/media"
	"gympro-backend/membership"
	"gympro-backend/models"
	"gympro-backend/notify"
	"gympro-backend/repository"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CustomerFormInput is the multipart form the UI submits for both create and
// update. Dates arrive as strings and are parsed explicitly; the photo rides
// along as the "image" file field.
type CustomerFormInput struct {
	Name         string `form:"name" binding:"required"`
	Phone        string `form:"phone"`
	Gender       string `form:"gender" binding:"required,oneof=male female"`
	RegisterDate string `form:"registerDate" binding:"required"`
	ExpireDate   string `form:"expireDate"`
	Fee          string `form:"fee" binding:"required"`
}

type CustomerController struct {
	Customers   *repository.CustomerRepository
	Uploader    *media.Uploader
	Dispatcher  *notify.Dispatcher
	Log         *logrus.Logger
	HorizonDays int
}

func NewCustomerController(customers *repository.CustomerRepository, uploader *media.Uploader, dispatcher *notify.Dispatcher, log *logrus.Logger, horizonDays int) *CustomerController {
	if horizonDays <= 0 {
		horizonDays = membership.DefaultHorizonDays
	}
	return &CustomerController{
		Customers:   customers,
		Uploader:    uploader,
		Dispatcher:  dispatcher,
		Log:         log,
		HorizonDays: horizonDays,
	}
}

// CreateCustomer registers a new member and sends the welcome message.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input CustomerFormInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	registerDate, err := utils.ParseDate(input.RegisterDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid register date format")
		return
	}

	fee, err := strconv.ParseFloat(input.Fee, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Fee must be a valid number")
		return
	}

	customer := models.Customer{
		Name:         input.Name,
		Gender:       input.Gender,
		RegisterDate: registerDate,
		Fee:          fee,
		Balance:      0,
		IsActive:     true,
	}

	if input.Phone != "" {
		// Check if phone already belongs to another customer
		if _, err := cc.Customers.FindByPhone(input.Phone); err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
			return
		} else if !errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		phone := input.Phone
		customer.Phone = &phone
	}

	if input.ExpireDate != "" {
		expireDate, err := utils.ParseDate(input.ExpireDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid expire date format")
			return
		}
		customer.ExpireDate = &expireDate
	}

	if url, ok := cc.uploadImage(c); ok {
		customer.Image = &url
	}

	if err := cc.Customers.Create(&customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.RespondWithError(c, http.StatusConflict, "Phone number already exists")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	if cc.Dispatcher != nil && customer.Phone != nil {
		cc.Dispatcher.SendAsync(&customer, notify.TypeWelcome)
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers with filtering and pagination.
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	filter := repository.CustomerFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Gender: c.Query("gender"),
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "limit", 12)

	customers, pagination, err := cc.Customers.List(filter, page, pageSize)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": pagination,
	})
}

// GetCustomerStats lists one status bucket with its count. Without a type it
// returns the bucket counts alone, for the dashboard tiles.
func (cc *CustomerController) GetCustomerStats(c *gin.Context) {
	bucket := c.Query("type")
	if bucket == "" {
		now := timeNow()
		counts := gin.H{}
		for _, b := range []string{"active", "expiringSoon", "expired"} {
			count, err := cc.Customers.CountByStatus(b, now)
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count customers")
				return
			}
			counts[b] = count
		}
		c.JSON(http.StatusOK, gin.H{"stats": counts})
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "limit", 50)

	customers, pagination, err := cc.Customers.List(repository.CustomerFilter{Status: bucket}, page, pageSize)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": pagination,
		"stats": gin.H{
			"type":  bucket,
			"count": pagination.TotalCount,
		},
	})
}

// GetCustomer returns one customer with the derived membership status.
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	customer, err := cc.Customers.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"status":   membership.Evaluate(customer, timeNow(), cc.HorizonDays),
	})
}

// UpdateCustomer edits a member. A failed image upload keeps the prior image.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input CustomerFormInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.Customers.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	registerDate, err := utils.ParseDate(input.RegisterDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid register date format")
		return
	}
	fee, err := strconv.ParseFloat(input.Fee, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Fee must be a valid number")
		return
	}

	if input.Phone != "" {
		if !utils.ValidatePhone(input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		if customer.PhoneNumber() != input.Phone {
			if existing, err := cc.Customers.FindByPhone(input.Phone); err == nil && existing.ID != customer.ID {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		phone := input.Phone
		customer.Phone = &phone
	} else {
		customer.Phone = nil
	}

	customer.Name = input.Name
	customer.Gender = input.Gender
	customer.RegisterDate = registerDate
	customer.Fee = fee

	if input.ExpireDate != "" {
		expireDate, err := utils.ParseDate(input.ExpireDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid expire date format")
			return
		}
		customer.ExpireDate = &expireDate
	} else {
		customer.ExpireDate = nil
	}

	if url, ok := cc.uploadImage(c); ok {
		customer.Image = &url
	}

	if err := cc.Customers.Update(customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.RespondWithError(c, http.StatusConflict, "Phone number already exists")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a member permanently.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if err := cc.Customers.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// uploadImage pushes an attached photo to the media host. Returns ok=false
// when no file was attached or the upload failed; callers keep whatever
// image they had.
func (cc *CustomerController) uploadImage(c *gin.Context) (string, bool) {
	if cc.Uploader == nil || !cc.Uploader.Configured() {
		return "", false
	}
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader.Size == 0 {
		return "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		cc.Log.WithError(err).Warn("failed to open uploaded image")
		return "", false
	}
	defer file.Close()

	url, err := cc.Uploader.Upload(fileHeader.Filename, file)
	if err != nil {
		cc.Log.WithError(err).Warn("image upload failed, keeping prior image")
		return "", false
	}
	return url, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
