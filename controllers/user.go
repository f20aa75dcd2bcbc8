package controllers

import (
	"errors"
	"net/http"

	"gympro-backend/models"
	"gympro-backend/repository"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateUserInput defines the expected JSON structure for creating a staff user
type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=staff manager admin"`
}

// UserController manages staff accounts.
type UserController struct {
	Users *repository.UserRepository
}

func NewUserController(users *repository.UserRepository) *UserController {
	return &UserController{Users: users}
}

// CreateUser registers a new staff account
func (uc *UserController) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user := models.User{
		Username: input.Username,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     input.Role,
	}

	if err := uc.Users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.RespondWithError(c, http.StatusConflict, "Username already exists")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// GetUsers lists all staff accounts without password hashes
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.Users.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a staff account
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := uc.Users.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
