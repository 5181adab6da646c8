package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stwalsh4118/apartments/internal/logger"
	"github.com/stwalsh4118/apartments/internal/models"
	"github.com/stwalsh4118/apartments/internal/repository"
)

// Service-level errors
var (
	ErrApartmentNotFound    = errors.New("apartment not found")
	ErrInvalidApartmentType = errors.New("invalid apartment type")
)

// ApartmentService defines the interface for apartment listing operations.
type ApartmentService interface {
	// CreateApartment stores a new listing and returns it with its assigned ID.
	// Returns ErrInvalidApartmentType if the type is not a known value.
	// Returns error for database failures.
	CreateApartment(ctx context.Context, apartment *models.Apartment) (*models.Apartment, error)

	// ListApartments returns every listing matching all constraints in filter.
	// Returns ErrInvalidApartmentType if the type constraint is not a known value.
	// Returns empty slice if no listings match (not an error).
	ListApartments(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error)

	// DeleteApartment removes the listing with the given id.
	// Returns ErrApartmentNotFound if no such listing exists.
	DeleteApartment(ctx context.Context, id uint) error
}

// apartmentService is the concrete implementation of ApartmentService.
type apartmentService struct {
	repo repository.ApartmentRepository
	log  *logger.Logger
}

// NewApartmentService creates a new instance of ApartmentService.
func NewApartmentService(repo repository.ApartmentRepository, log *logger.Logger) ApartmentService {
	return &apartmentService{
		repo: repo,
		log:  log,
	}
}

// CreateApartment validates the listing type and persists the listing.
func (s *apartmentService) CreateApartment(ctx context.Context, apartment *models.Apartment) (*models.Apartment, error) {
	if !apartment.AppartmentType.Valid() {
		s.log.Warn("Invalid apartment type provided", map[string]interface{}{
			"appartment_type": string(apartment.AppartmentType),
		})
		return nil, fmt.Errorf("%w: %q", ErrInvalidApartmentType, apartment.AppartmentType)
	}

	if err := s.repo.Create(ctx, apartment); err != nil {
		s.log.Error("Failed to create apartment", err, map[string]interface{}{
			"appartment_type": string(apartment.AppartmentType),
			"address":         apartment.Address,
		})
		return nil, fmt.Errorf("failed to create apartment: %w", err)
	}

	s.log.Info("Apartment created", map[string]interface{}{
		"apartment_id":    apartment.ID,
		"appartment_type": string(apartment.AppartmentType),
	})

	return apartment, nil
}

// ListApartments validates the type constraint, if any, and queries the repository.
func (s *apartmentService) ListApartments(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error) {
	fields := filter.Fields()

	if filter.AppartmentType != nil && !filter.AppartmentType.Valid() {
		s.log.Warn("Invalid apartment type filter provided", fields)
		return nil, fmt.Errorf("%w: %q", ErrInvalidApartmentType, *filter.AppartmentType)
	}

	s.log.Debug("Querying apartments", fields)

	apartments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to query apartments", err, fields)
		return nil, fmt.Errorf("failed to query apartments: %w", err)
	}

	fields["count"] = len(apartments)
	s.log.Info("Apartments found", fields)

	return apartments, nil
}

// DeleteApartment removes a listing and maps a missing id to ErrApartmentNotFound.
func (s *apartmentService) DeleteApartment(ctx context.Context, id uint) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete apartment", err, map[string]interface{}{
			"apartment_id": id,
		})
		return fmt.Errorf("failed to delete apartment: %w", err)
	}

	if !found {
		s.log.Debug("No apartment found to delete", map[string]interface{}{
			"apartment_id": id,
		})
		return fmt.Errorf("%w: id %d", ErrApartmentNotFound, id)
	}

	s.log.Info("Apartment deleted", map[string]interface{}{
		"apartment_id": id,
	})

	return nil
}
