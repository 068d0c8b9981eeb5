package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/photo"
)

func validRegistrantBody(name string) string {
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	return fmt.Sprintf(`{
		"fullName": %q,
		"email": %q,
		"phone": "+12128675309",
		"address": "12 Oak Street, Springfield",
		"gender": "other",
		"dateOfBirth": "1990-01-15"
	}`, name, email)
}

func registrantBodyWithPhoto(name, photoData string) string {
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	return fmt.Sprintf(`{
		"fullName": %q,
		"email": %q,
		"phone": "+12128675309",
		"address": "12 Oak Street, Springfield",
		"gender": "other",
		"dateOfBirth": "1990-01-15",
		"photoData": %q
	}`, name, email, photoData)
}

func createRegistrant(t *testing.T, router *gin.Engine, name string) models.Registrant {
	t.Helper()

	recorder := performJSON(router, http.MethodPost, "/v1/registrants", validRegistrantBody(name))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var registrant models.Registrant
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &registrant))
	require.NotEmpty(t, registrant.ID)
	return registrant
}

func TestCreateRegistrant_RejectsIncompletePayload(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/v1/registrants",
		`{"fullName": "Jane Doe"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = performJSON(router, http.MethodPost, "/v1/registrants",
		strings.Replace(validRegistrantBody("Jane Doe"), `"other"`, `"neither"`, 1))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateRegistrant_AcceptsInlineImagePhotoData(t *testing.T) {
	router := setupRouter(t)

	uri := photo.EncodeDataURI("image/png", smallPNG(t))
	recorder := performJSON(router, http.MethodPost, "/v1/registrants",
		registrantBodyWithPhoto("Jane Doe", uri))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created models.Registrant
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, uri, created.PhotoData)
	assert.NotEmpty(t, created.PhotoPath)
}

func TestCreateRegistrant_RejectsNonImageInlinePhotoData(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	uri := photo.EncodeDataURI("text/plain", []byte("plain text pretending to be a photo"))
	recorder := performJSON(router, http.MethodPost, "/v1/registrants",
		registrantBodyWithPhoto("Jane Doe", uri))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// The store was never reached.
	listing := performJSON(router, http.MethodGet, "/v1/registrants", "")
	require.Equal(t, http.StatusOK, listing.Code)

	var response models.PaginatedRegistrants
	require.NoError(t, json.Unmarshal(listing.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Pagination.Total)
}

func TestCreateRegistrant_RejectsOversizedInlinePhotoData(t *testing.T) {
	router := setupRouter(t)

	previous := config.AppConfig.PhotoMaxBytes
	config.AppConfig.PhotoMaxBytes = 16
	t.Cleanup(func() {
		config.AppConfig.PhotoMaxBytes = previous
	})

	uri := photo.EncodeDataURI("image/png", smallPNG(t))
	recorder := performJSON(router, http.MethodPost, "/v1/registrants",
		registrantBodyWithPhoto("Jane Doe", uri))
	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
}

func TestUpdateRegistrant_RejectsInvalidInlinePhotoData(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	created := createRegistrant(t, router, "Jane Doe")

	uri := photo.EncodeDataURI("application/octet-stream", []byte{0x00, 0x01, 0x02, 0x03})
	recorder := performJSON(router, http.MethodPut, "/v1/registrants/"+created.ID,
		registrantBodyWithPhoto("Jane Doe-Edited", uri))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// The record is untouched, photo pair included.
	fetched := performJSON(router, http.MethodGet, "/v1/registrants/"+created.ID, "")
	require.Equal(t, http.StatusOK, fetched.Code)

	var registrant models.Registrant
	require.NoError(t, json.Unmarshal(fetched.Body.Bytes(), &registrant))
	assert.Equal(t, "Jane Doe", registrant.FullName)
	assert.Empty(t, registrant.PhotoData)
	assert.Empty(t, registrant.PhotoPath)
}

func TestGetRegistrant_RoundTrip(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	created := createRegistrant(t, router, "Jane Doe")

	recorder := performJSON(router, http.MethodGet, "/v1/registrants/"+created.ID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched models.Registrant
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Jane Doe", fetched.FullName)
}

func TestGetRegistrant_UnknownID(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	recorder := performJSON(router, http.MethodGet, "/v1/registrants/no-such-id", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListRegistrants_SearchAndPagination(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	for _, name := range []string{"Alice Smith", "Bob Jones", "Alice Brown"} {
		createRegistrant(t, router, name)
	}

	recorder := performJSON(router, http.MethodGet, "/v1/registrants?search=alice", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.PaginatedRegistrants
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, "Alice Smith", response.Data[0].FullName)
	assert.Equal(t, "Alice Brown", response.Data[1].FullName)
	assert.Equal(t, 2, response.Pagination.Total)
}

func TestListRegistrants_ChangedSearchResetsPage(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	for i := 0; i < 7; i++ {
		createRegistrant(t, router, fmt.Sprintf("Person %02d", i))
	}

	recorder := performJSON(router,
		http.MethodGet, "/v1/registrants?search=person&prev_search=alice&page=2&per_page=5", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.PaginatedRegistrants
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Pagination.Page)
	assert.Len(t, response.Data, 5)
}

func TestListRegistrants_InvalidPagination(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	recorder := performJSON(router, http.MethodGet, "/v1/registrants?page=zero", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = performJSON(router, http.MethodGet, "/v1/registrants?per_page=500", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateRegistrant(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	created := createRegistrant(t, router, "Jane Doe")

	recorder := performJSON(router, http.MethodPut, "/v1/registrants/"+created.ID,
		validRegistrantBody("Jane Doe-Edited"))
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Registrant
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Jane Doe-Edited", updated.FullName)

	recorder = performJSON(router, http.MethodPut, "/v1/registrants/no-such-id",
		validRegistrantBody("Nobody"))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteRegistrant(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	created := createRegistrant(t, router, "Jane Doe")

	recorder := performJSON(router, http.MethodDelete, "/v1/registrants/"+created.ID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(router, http.MethodGet, "/v1/registrants/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = performJSON(router, http.MethodDelete, "/v1/registrants/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func performUpload(t *testing.T, router *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/v1/registrants/photo", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func smallPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadPhoto_ValidImage(t *testing.T) {
	router := setupRouter(t)

	recorder := performUpload(t, router, "selfie.png", smallPNG(t))
	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, strings.HasPrefix(response["photoData"], "data:image/png;base64,"))
}

func TestUploadPhoto_RejectsNonImage(t *testing.T) {
	router := setupRouter(t)

	recorder := performUpload(t, router, "notes.txt", []byte("plain text, no pixels here"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUploadPhoto_RejectsOversizedImage(t *testing.T) {
	router := setupRouter(t)

	previous := config.AppConfig.PhotoMaxBytes
	config.AppConfig.PhotoMaxBytes = 16
	t.Cleanup(func() {
		config.AppConfig.PhotoMaxBytes = previous
	})

	recorder := performUpload(t, router, "selfie.png", smallPNG(t))
	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
}

func TestUploadPhoto_RejectsMissingFile(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/v1/registrants/photo", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestExportRegistrants_ReturnsPDF(t *testing.T) {
	router := setupRouter(t)
	loginAsAdmin(t, router)

	createRegistrant(t, router, "Alice Smith")
	createRegistrant(t, router, "Bob Jones")

	recorder := performJSON(router, http.MethodGet, "/v1/registrants/export?search=alice", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "registrants.pdf")
	assert.True(t, bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF-")))
}
