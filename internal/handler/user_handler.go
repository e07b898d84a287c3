package handler

import (
	"errors"
	"log"
	"net/http"

	"portfolio_server/internal/middleware"
	"portfolio_server/internal/model"
	"portfolio_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles shipping-details and admin-aggregate requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

func (h *UserHandler) GetUserDetails(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error getting user details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user details"})
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *UserHandler) SaveUserDetails(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var details model.UserDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	details.UserID = userID

	if err := h.service.SaveDetails(c.Request.Context(), &details); err != nil {
		log.Printf("Error saving user details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User details saved successfully"})
}

func (h *UserHandler) GetUserCount(c *gin.Context) {
	count, err := h.service.CountUsers(c.Request.Context())
	if err != nil {
		log.Printf("Error counting users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// RegisterUserRoutes registers the authenticated user routes and the
// admin-only aggregate route.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, jwtAuthMW, adminMW gin.HandlerFunc) {
	rg.GET("/user-details", jwtAuthMW, h.GetUserDetails)
	rg.POST("/user-details", jwtAuthMW, h.SaveUserDetails)
	rg.GET("/user-count", jwtAuthMW, adminMW, h.GetUserCount)
}
