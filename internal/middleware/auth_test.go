package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/logging"
	"github.com/jlbbacs/quick-registration/internal/services"
	"github.com/jlbbacs/quick-registration/internal/storage"
)

var testSetupOnce sync.Once

func setupGuardedRoute(t *testing.T) *gin.Engine {
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

	services.InitSessionService(context.Background(), storage.NewMemory(), "admin", "admin123")

	router := gin.New()
	router.GET("/guarded", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAdmin_BlocksUnauthenticated(t *testing.T) {
	router := setupGuardedRoute(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAdmin_PassesAuthenticated(t *testing.T) {
	router := setupGuardedRoute(t)

	_, ok := services.SessionServiceInstance.Login(context.Background(), "admin", "admin123")
	require.True(t, ok)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
