package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlbbacs/quick-registration/internal/models"
)

func TestLogin_Success(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/v1/auth/login",
		`{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Session)
	assert.Equal(t, "admin", response.Session.Username)
	assert.True(t, response.Session.IsAuthenticated)
}

func TestLogin_WrongCredentials(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"intruder","password":"admin123"}`,
	} {
		recorder := performJSON(router, http.MethodPost, "/v1/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var response models.LoginResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.Nil(t, response.Session)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/v1/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLogout_EndsAdminAccess(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	recorder := performJSON(router, http.MethodGet, "/v1/registrants", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(router, http.MethodPost, "/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(router, http.MethodGet, "/v1/registrants", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminSurface_RequiresAuthentication(t *testing.T) {
	router := setupRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/registrants"},
		{http.MethodGet, "/v1/registrants/export"},
		{http.MethodGet, "/v1/registrants/some-id"},
		{http.MethodPut, "/v1/registrants/some-id"},
		{http.MethodDelete, "/v1/registrants/some-id"},
	}
	for _, p := range paths {
		recorder := performJSON(router, p.method, p.path, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", p.method, p.path)
	}
}

func TestPublicSurface_NeedsNoAuthentication(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(router, http.MethodPost, "/v1/registrants", validRegistrantBody("Jane Doe"))
	assert.Equal(t, http.StatusCreated, recorder.Code)
}
