package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gympro-backend/repository"
	"gympro-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController issues and inspects staff sessions.
type AuthController struct {
	Users *repository.UserRepository
}

func NewAuthController(users *repository.UserRepository) *AuthController {
	return &AuthController{Users: users}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := ac.Users.GetByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid username or password")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	maxAge := 3600
	c.SetCookie("auth-token", token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := ac.Users.GetByID(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
