package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/export"
	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/observability"
	"github.com/jlbbacs/quick-registration/internal/photo"
	"github.com/jlbbacs/quick-registration/internal/services"
	"github.com/jlbbacs/quick-registration/internal/utils"
)

// ListRegistrants godoc
// @Summary List registrants
// @Description Returns the filtered, paginated registrant listing. The search term matches name and email case-insensitively and phone by plain substring; a blank term matches everything. Supplying a prev_search value that differs from search resets the page to 1.
// @Tags registrants
// @Produce json
// @Param search query string false "Free-text search term"
// @Param prev_search query string false "Search term of the previous request, used to reset pagination"
// @Param page query int false "Page number (default: 1)" minimum(1)
// @Param per_page query int false "Items per page (default: configured page size, max: 100)" minimum(1) maximum(100)
// @Security AdminSession
// @Success 200 {object} models.PaginatedRegistrants
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants [get]
func ListRegistrants(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListRegistrants")
	defer span.End()

	search := c.Query("search")
	logger := observability.Logger().With(zap.String("search", search))

	span.SetAttributes(
		attribute.String("operation", "list_registrants"),
		attribute.String("service", "registrant"),
	)

	ctx, paginationSpan := utils.TraceInputValidation(ctx, "pagination_parameters", "page")
	page, perPage, err := services.ValidatePaginationParams(c.Query("page"), c.Query("per_page"), config.AppConfig.PageSize)
	if err != nil {
		utils.RecordErrorInSpan(paginationSpan, err, map[string]interface{}{
			"page_param":     c.Query("page"),
			"per_page_param": c.Query("per_page"),
		})
		paginationSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	paginationSpan.End()

	// A changed search term always restarts the listing at the first page.
	if prev, ok := c.GetQuery("prev_search"); ok && prev != search {
		page = 1
	}

	if services.RegistrantServiceInstance == nil {
		logger.Error("registrant service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Registrant service unavailable"})
		return
	}

	registrants, err := services.RegistrantServiceInstance.List(ctx)
	if err != nil {
		logger.Error("failed to list registrants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve registrants"})
		return
	}

	filtered := services.FilterRegistrants(registrants, search)
	response := services.PaginateRegistrants(filtered, page, perPage)

	utils.AddSpanAttribute(span, "registrants.total", response.Pagination.Total)
	utils.AddSpanAttribute(span, "registrants.returned", len(response.Data))

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(http.StatusOK, response)
	responseSpan.End()

	logger.Debug("ListRegistrants completed",
		zap.Int("page", response.Pagination.Page),
		zap.Int("per_page", perPage),
		zap.Int("total", response.Pagination.Total),
		zap.Duration("total_duration", time.Since(startTime)))
}

// GetRegistrant godoc
// @Summary Get a registrant by id
// @Tags registrants
// @Produce json
// @Param id path string true "Registrant id"
// @Security AdminSession
// @Success 200 {object} models.Registrant
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants/{id} [get]
func GetRegistrant(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetRegistrant")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("id", id))

	span.SetAttributes(
		attribute.String("registrant.id", id),
		attribute.String("operation", "get_registrant"),
		attribute.String("service", "registrant"),
	)

	if services.RegistrantServiceInstance == nil {
		logger.Error("registrant service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Registrant service unavailable"})
		return
	}

	registrant, err := services.RegistrantServiceInstance.GetByID(ctx, id)
	if err != nil {
		logger.Error("failed to get registrant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve registrant"})
		return
	}
	if registrant == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Registrant not found"})
		return
	}

	c.JSON(http.StatusOK, registrant)
}

// CreateRegistrant godoc
// @Summary Submit a registration
// @Description Creates a registrant from already-validated form fields plus an optional photo data URI. The id and creation timestamp are assigned server-side.
// @Tags registrants
// @Accept json
// @Produce json
// @Param registrant body models.RegistrantInput true "Registration fields"
// @Success 201 {object} models.Registrant
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants [post]
func CreateRegistrant(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateRegistrant")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "create_registrant"),
		attribute.String("service", "registrant"),
	)

	var input models.RegistrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if !validatePhotoData(c, input.PhotoData) {
		return
	}

	if services.RegistrantServiceInstance == nil {
		observability.Logger().Error("registrant service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Registrant service unavailable"})
		return
	}

	registrant, err := services.RegistrantServiceInstance.Create(ctx, &input)
	if err != nil {
		observability.Logger().Error("failed to create registrant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create registrant"})
		return
	}

	c.JSON(http.StatusCreated, registrant)
}

// UpdateRegistrant godoc
// @Summary Update a registrant
// @Description Replaces the mutable fields of a registrant. An empty photoData preserves the existing photo and its path; a non-empty one replaces both.
// @Tags registrants
// @Accept json
// @Produce json
// @Param id path string true "Registrant id"
// @Param registrant body models.RegistrantInput true "Updated fields"
// @Security AdminSession
// @Success 200 {object} models.Registrant
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants/{id} [put]
func UpdateRegistrant(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateRegistrant")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("id", id))

	span.SetAttributes(
		attribute.String("registrant.id", id),
		attribute.String("operation", "update_registrant"),
		attribute.String("service", "registrant"),
	)

	var input models.RegistrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if !validatePhotoData(c, input.PhotoData) {
		return
	}

	if services.RegistrantServiceInstance == nil {
		logger.Error("registrant service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Registrant service unavailable"})
		return
	}

	registrant, err := services.RegistrantServiceInstance.Update(ctx, id, &input)
	if err != nil {
		if errors.Is(err, models.ErrRegistrantNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Registrant not found"})
			return
		}
		logger.Error("failed to update registrant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update registrant"})
		return
	}

	c.JSON(http.StatusOK, registrant)
}

// DeleteRegistrant godoc
// @Summary Delete a registrant
// @Description Removes a registrant permanently. Deleting an unknown id is reported as not found and changes nothing.
// @Tags registrants
// @Produce json
// @Param id path string true "Registrant id"
// @Security AdminSession
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants/{id} [delete]
func DeleteRegistrant(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteRegistrant")
	defer span.End()

	id := c.Param("id")
	logger := observability.Logger().With(zap.String("id", id))

	span.SetAttributes(
		attribute.String("registrant.id", id),
		attribute.String("operation", "delete_registrant"),
		attribute.String("service", "registrant"),
	)

	if services.RegistrantServiceInstance == nil {
		logger.Error("registrant service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Registrant service unavailable"})
		return
	}

	removed, err := services.RegistrantServiceInstance.Delete(ctx, id)
	if err != nil {
		logger.Error("failed to delete registrant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete registrant"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Registrant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// validatePhotoData rejects an inline photoData payload the upload endpoint
// would refuse, before the store is ever invoked. An empty payload is valid
// (no photo). Writes the error response and returns false on rejection.
func validatePhotoData(c *gin.Context, dataURI string) bool {
	if dataURI == "" {
		return true
	}

	maxBytes := config.AppConfig.PhotoMaxBytes
	if err := photo.ValidateDataURI(dataURI, maxBytes); err != nil {
		switch {
		case errors.Is(err, models.ErrImageTooLarge):
			observability.PhotoValidations.WithLabelValues("too_large").Inc()
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("Photo exceeds the %d byte limit", maxBytes),
			})
		case errors.Is(err, models.ErrNotAnImage):
			observability.PhotoValidations.WithLabelValues("not_image").Inc()
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "photoData must be an image data URI"})
		default:
			observability.PhotoValidations.WithLabelValues("error").Inc()
			observability.Logger().Error("photo validation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process photo"})
		}
		return false
	}

	return true
}

// UploadPhoto godoc
// @Summary Upload a photo
// @Description File-strategy capture: validates that the uploaded file is an image no larger than the configured ceiling and returns its normalized data URI representation.
// @Tags registrants
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image file (max 5 MiB)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants/photo [post]
func UploadPhoto(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "UploadPhoto")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "upload_photo"),
		attribute.String("service", "photo"),
	)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		observability.Logger().Error("failed to open uploaded photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded photo"})
		return
	}
	defer file.Close()

	// Read one byte past the ceiling so oversized uploads are detectable
	// without buffering arbitrarily large bodies.
	maxBytes := config.AppConfig.PhotoMaxBytes
	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		observability.Logger().Error("failed to read uploaded photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded photo"})
		return
	}

	dataURI, err := photo.FromFile(content, maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrImageTooLarge):
			observability.PhotoValidations.WithLabelValues("too_large").Inc()
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("Photo exceeds the %d byte limit", maxBytes),
			})
		case errors.Is(err, models.ErrNotAnImage):
			observability.PhotoValidations.WithLabelValues("not_image").Inc()
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File must be an image"})
		default:
			observability.PhotoValidations.WithLabelValues("error").Inc()
			observability.Logger().Error("photo validation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process photo"})
		}
		return
	}

	observability.PhotoValidations.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{"photoData": dataURI})
}

// ExportRegistrants godoc
// @Summary Export registrants to PDF
// @Description Renders the current filtered listing, photos included, into a downloadable PDF document.
// @Tags registrants
// @Produce application/pdf
// @Param search query string false "Free-text search term"
// @Security AdminSession
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /registrants/export [get]
func ExportRegistrants(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ExportRegistrants")
	defer span.End()

	search := c.Query("search")
	logger := observability.Logger().With(zap.String("search", search))

	span.SetAttributes(
		attribute.String("operation", "export_registrants"),
		attribute.String("service", "registrant"),
	)

	if services.RegistrantServiceInstance == nil {
		logger.Error("registrant service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Registrant service unavailable"})
		return
	}

	registrants, err := services.RegistrantServiceInstance.List(ctx)
	if err != nil {
		logger.Error("failed to list registrants for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve registrants"})
		return
	}

	filtered := services.FilterRegistrants(registrants, search)

	document, err := export.RegistrantsPDF(filtered)
	if err != nil {
		logger.Error("failed to render export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render export"})
		return
	}

	utils.AddSpanAttribute(span, "export.registrants", len(filtered))
	utils.AddSpanAttribute(span, "export.bytes", len(document))

	c.Header("Content-Disposition", `attachment; filename="registrants.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}
