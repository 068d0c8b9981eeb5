package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/observability"
	"github.com/jlbbacs/quick-registration/internal/storage"
	"github.com/jlbbacs/quick-registration/internal/utils"
)

// RegistrantService owns the registrant collection. Every mutation reads the
// whole collection, applies a single-record change and writes the whole
// collection back, so a failed write leaves the prior state intact.
type RegistrantService struct {
	store  storage.KeyValue
	logger *zap.Logger
}

// NewRegistrantService creates a new registrant service instance
func NewRegistrantService(store storage.KeyValue, logger *zap.Logger) *RegistrantService {
	return &RegistrantService{
		store:  store,
		logger: logger,
	}
}

// Global registrant service instance
var RegistrantServiceInstance *RegistrantService

// InitRegistrantService initializes the global registrant service instance
func InitRegistrantService(store storage.KeyValue) {
	logger := zap.L().Named("registrant_service")
	RegistrantServiceInstance = NewRegistrantService(store, logger)
	logger.Info("registrant service initialized")
}

// List returns every registrant in insertion order, oldest first. An
// uninitialized collection is lazily created as empty.
func (s *RegistrantService) List(ctx context.Context) ([]models.Registrant, error) {
	ctx, span := utils.TraceStoreRead(ctx, storage.RegistrantsKey)
	defer span.End()

	registrants, err := s.load(ctx)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "list"})
		return nil, err
	}

	utils.AddSpanAttribute(span, "registrants.count", len(registrants))
	return registrants, nil
}

// GetByID returns the registrant with the given id, or nil when no record
// matches. Absence is a valid result, not an error.
func (s *RegistrantService) GetByID(ctx context.Context, id string) (*models.Registrant, error) {
	ctx, span := utils.TraceStoreRead(ctx, storage.RegistrantsKey)
	defer span.End()

	registrants, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range registrants {
		if registrants[i].ID == id {
			utils.AddSpanAttribute(span, "registrant.found", true)
			return &registrants[i], nil
		}
	}

	utils.AddSpanAttribute(span, "registrant.found", false)
	return nil, nil
}

// Create appends a new registrant built from the supplied fields. The id and
// creation timestamp are assigned here; photoPath is derived from the capture
// time when a photo is present and left empty otherwise.
func (s *RegistrantService) Create(ctx context.Context, input *models.RegistrantInput) (*models.Registrant, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "create_registrant")
	defer span.End()

	registrants, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	registrant := models.Registrant{
		ID:          uuid.NewString(),
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       utils.NormalizePhone(input.Phone, config.AppConfig.DefaultPhoneRegion),
		Address:     input.Address,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		PhotoData:   input.PhotoData,
		CreatedAt:   now,
	}
	if input.PhotoData != "" {
		registrant.PhotoPath = photoPathAt(now)
	}

	registrants = append(registrants, registrant)
	if err := s.save(ctx, registrants); err != nil {
		return nil, err
	}

	s.logger.Info("registrant created",
		zap.String("id", registrant.ID),
		zap.String("email", observability.MaskEmail(registrant.Email)),
		zap.Bool("has_photo", registrant.PhotoData != ""))

	return &registrant, nil
}

// Update replaces the mutable fields of the registrant with the given id.
// When the incoming photo is empty the existing photoData/photoPath pair is
// preserved unchanged; a non-empty photo replaces both and recomputes the
// path. Returns models.ErrRegistrantNotFound without mutating anything when
// the id is unknown.
func (s *RegistrantService) Update(ctx context.Context, id string, input *models.RegistrantInput) (*models.Registrant, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "update_registrant")
	defer span.End()

	registrants, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range registrants {
		if registrants[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		utils.AddSpanAttribute(span, "registrant.found", false)
		return nil, models.ErrRegistrantNotFound
	}

	existing := registrants[index]
	updated := models.Registrant{
		ID:          existing.ID,
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       utils.NormalizePhone(input.Phone, config.AppConfig.DefaultPhoneRegion),
		Address:     input.Address,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		CreatedAt:   existing.CreatedAt,
	}

	if input.PhotoData == "" {
		// No new photo: keep the existing photo and path as a pair.
		updated.PhotoData = existing.PhotoData
		updated.PhotoPath = existing.PhotoPath
	} else {
		updated.PhotoData = input.PhotoData
		updated.PhotoPath = photoPathAt(time.Now().UTC())
	}

	registrants[index] = updated
	if err := s.save(ctx, registrants); err != nil {
		return nil, err
	}

	s.logger.Info("registrant updated",
		zap.String("id", id),
		zap.Bool("photo_replaced", input.PhotoData != ""))

	return &updated, nil
}

// Delete removes the registrant with the given id and reports whether a
// removal occurred. Deleting an unknown id is a no-op returning false.
func (s *RegistrantService) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "delete_registrant")
	defer span.End()

	registrants, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	index := -1
	for i := range registrants {
		if registrants[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		utils.AddSpanAttribute(span, "registrant.found", false)
		return false, nil
	}

	registrants = append(registrants[:index], registrants[index+1:]...)
	if err := s.save(ctx, registrants); err != nil {
		return false, err
	}

	s.logger.Info("registrant deleted", zap.String("id", id))
	return true, nil
}

// load reads the whole collection, initializing it as empty on first access.
func (s *RegistrantService) load(ctx context.Context) ([]models.Registrant, error) {
	raw, err := s.store.Get(ctx, storage.RegistrantsKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			if err := s.save(ctx, []models.Registrant{}); err != nil {
				return nil, err
			}
			observability.StoreOperations.WithLabelValues("read", "initialized").Inc()
			return []models.Registrant{}, nil
		}
		observability.StoreOperations.WithLabelValues("read", "error").Inc()
		return nil, fmt.Errorf("failed to load registrants: %w", err)
	}

	var registrants []models.Registrant
	if err := json.Unmarshal(raw, &registrants); err != nil {
		observability.StoreOperations.WithLabelValues("read", "error").Inc()
		return nil, fmt.Errorf("failed to decode registrants: %w", err)
	}

	observability.StoreOperations.WithLabelValues("read", "success").Inc()
	return registrants, nil
}

// save writes the whole collection back as one unit.
func (s *RegistrantService) save(ctx context.Context, registrants []models.Registrant) error {
	ctx, span := utils.TraceStoreWrite(ctx, storage.RegistrantsKey)
	defer span.End()

	raw, err := json.Marshal(registrants)
	if err != nil {
		return fmt.Errorf("failed to encode registrants: %w", err)
	}

	if err := s.store.Set(ctx, storage.RegistrantsKey, raw); err != nil {
		observability.StoreOperations.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("failed to persist registrants: %w", err)
	}

	observability.StoreOperations.WithLabelValues("write", "success").Inc()
	return nil
}

// photoPathAt derives the synthetic photo label from the capture time. It
// simulates a filesystem reference and carries no real filesystem meaning.
func photoPathAt(t time.Time) string {
	return fmt.Sprintf("photo_%d.jpg", t.UnixMilli())
}
