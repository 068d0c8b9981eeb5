package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/logging"
	"github.com/jlbbacs/quick-registration/internal/middleware"
	"github.com/jlbbacs/quick-registration/internal/services"
	"github.com/jlbbacs/quick-registration/internal/storage"
)

var testSetupOnce sync.Once

// setupRouter wires fresh services over an in-memory store and returns a
// router with the same route layout the server uses.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	testSetupOnce.Do(func() {
		os.Setenv("STORAGE_BACKEND", "memory")
		os.Setenv("ENVIRONMENT", "test")

		if err := logging.InitLogger(); err != nil {
			panic(err)
		}
		if err := config.LoadConfig(); err != nil {
			panic(err)
		}
		gin.SetMode(gin.TestMode)
	})

	store := storage.NewMemory()
	services.InitRegistrantService(store)
	services.InitSessionService(context.Background(), store,
		config.AppConfig.AdminUsername, config.AppConfig.AdminPassword)

	router := gin.New()
	v1 := router.Group("/v1")
	{
		v1.GET("/health", HealthCheck)

		v1.POST("/auth/login", Login)
		v1.POST("/auth/logout", Logout)

		v1.POST("/registrants", CreateRegistrant)
		v1.POST("/registrants/photo", UploadPhoto)

		admin := v1.Group("", middleware.RequireAdmin())
		{
			admin.GET("/registrants", ListRegistrants)
			admin.GET("/registrants/export", ExportRegistrants)
			admin.GET("/registrants/:id", GetRegistrant)
			admin.PUT("/registrants/:id", UpdateRegistrant)
			admin.DELETE("/registrants/:id", DeleteRegistrant)
		}
	}

	return router
}

func loginAsAdmin(t *testing.T, router *gin.Engine) {
	t.Helper()

	recorder := performJSON(router, http.MethodPost, "/v1/auth/login",
		`{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func performJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}
