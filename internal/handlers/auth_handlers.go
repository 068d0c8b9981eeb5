package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/observability"
	"github.com/jlbbacs/quick-registration/internal/services"
)

// Login godoc
// @Summary Admin login
// @Description Validates the single admin credential pair and establishes the session. A failed attempt does not reveal whether the username or the password was wrong.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credential pair"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} models.LoginResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Login")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "login"),
		attribute.String("service", "session"),
	)

	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username and password are required"})
		return
	}

	if services.SessionServiceInstance == nil {
		observability.Logger().Error("session service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session service unavailable"})
		return
	}

	session, ok := services.SessionServiceInstance.Login(ctx, request.Username, request.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.LoginResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Success: true, Session: session})
}

// Logout godoc
// @Summary Admin logout
// @Description Clears in-memory and persisted session state unconditionally.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Logout")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "logout"),
		attribute.String("service", "session"),
	)

	if services.SessionServiceInstance == nil {
		observability.Logger().Error("session service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session service unavailable"})
		return
	}

	if err := services.SessionServiceInstance.Logout(ctx); err != nil {
		observability.Logger().Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
