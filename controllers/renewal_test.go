package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gympro-backend/controllers"
	"gympro-backend/models"
	"gympro-backend/repository"
	"gympro-backend/routes"
	"gympro-backend/services"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Payment{}, &models.NotificationLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	customerRepo := repository.NewCustomerRepository(db, 7)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	renewalService := services.NewRenewalService(db)

	ctrl := routes.Controllers{
		Auth:          controllers.NewAuthController(userRepo),
		Users:         controllers.NewUserController(userRepo),
		Customers:     controllers.NewCustomerController(customerRepo, nil, nil, log, 7),
		Renewals:      controllers.NewRenewalController(renewalService, customerRepo, nil),
		Payments:      controllers.NewPaymentController(paymentRepo, customerRepo),
		Notifications: controllers.NewNotificationController(customerRepo, nil),
	}
	return routes.SetupRouter(ctrl, log), db
}

func seedStaff(t *testing.T, db *gorm.DB) (models.User, string) {
	t.Helper()
	staff := models.User{Username: "staff1", Password: "secret123", Role: "staff"}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	token, err := utils.GenerateToken(staff.ID, staff.Username, staff.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return staff, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginAndMe(t *testing.T) {
	r, db := setupTestServer(t)
	seedStaff(t, db)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": "staff1", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.User.Username != "staff1" {
		t.Fatalf("login response = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/auth/me", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{"username": "staff1", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", w.Code)
	}
}

func TestRenewEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	_, token := seedStaff(t, db)

	customer := models.Customer{
		Name: "Axmed", Gender: "male", Fee: 30, Balance: 5,
		RegisterDate: time.Now(), IsActive: false,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/customers/1/renew", token,
		gin.H{"expireDate": "2025-03-01", "paidAmount": 30})
	if w.Code != http.StatusOK {
		t.Fatalf("renew status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success  bool `json:"success"`
		Customer struct {
			IsActive   bool
			ExpireDate *time.Time
		} `json:"customer"`
		Payment struct {
			PaidAmount float64
			Discount   float64
			Balance    float64
		} `json:"payment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || !resp.Customer.IsActive {
		t.Fatalf("renew response = %s", w.Body.String())
	}
	if resp.Customer.ExpireDate == nil || resp.Customer.ExpireDate.Format("2006-01-02") != "2025-03-01" {
		t.Fatalf("expireDate = %v", resp.Customer.ExpireDate)
	}
	if resp.Payment.PaidAmount != 30 || resp.Payment.Discount != 0 || resp.Payment.Balance != 5 {
		t.Fatalf("payment = %+v", resp.Payment)
	}

	// Unknown customer.
	w = doJSON(t, r, http.MethodPost, "/api/customers/999/renew", token,
		gin.H{"expireDate": "2025-03-01", "paidAmount": 30})
	if w.Code != http.StatusNotFound {
		t.Fatalf("renew unknown = %d", w.Code)
	}

	// No token.
	w = doJSON(t, r, http.MethodPost, "/api/customers/1/renew", "",
		gin.H{"expireDate": "2025-03-01", "paidAmount": 30})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("renew without token = %d", w.Code)
	}
}

func TestRenewBatchEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	_, token := seedStaff(t, db)

	customer := models.Customer{Name: "Hodan", Gender: "female", Fee: 25, RegisterDate: time.Now()}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/customers/renew-batch", token, gin.H{
		"customerIds": []uint{customer.ID, 4242},
		"expireDate":  "2025-03-01",
		"paidAmount":  25,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("batch status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
		Results   []struct {
			CustomerID uint   `json:"customerId"`
			Success    bool   `json:"success"`
			Error      string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Succeeded != 1 || resp.Failed != 1 || len(resp.Results) != 2 {
		t.Fatalf("batch response = %s", w.Body.String())
	}

	// The committed renewal must survive the failed one.
	var stored models.Customer
	if err := db.First(&stored, customer.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.IsActive {
		t.Fatal("batch failure reverted a committed renewal")
	}
}

func TestListCustomersEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	_, token := seedStaff(t, db)

	expire := time.Now().AddDate(0, 0, 3)
	for _, c := range []models.Customer{
		{Name: "Soon", Gender: "male", Fee: 30, IsActive: true, ExpireDate: &expire, RegisterDate: time.Now()},
		{Name: "Lapsed", Gender: "male", Fee: 30, IsActive: false, RegisterDate: time.Now()},
	} {
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/customers?status=expiringSoon&page=1&limit=10", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var resp struct {
		Customers  []struct{ Name string } `json:"customers"`
		Pagination struct {
			TotalCount int64 `json:"totalCount"`
			HasNext    bool  `json:"hasNext"`
			HasPrev    bool  `json:"hasPrev"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination.TotalCount != 1 || len(resp.Customers) != 1 || resp.Customers[0].Name != "Soon" {
		t.Fatalf("list response = %s", w.Body.String())
	}
	if resp.Pagination.HasNext || resp.Pagination.HasPrev {
		t.Fatalf("pagination flags = %+v", resp.Pagination)
	}
}
