package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/apartments/internal/database"
	"github.com/stwalsh4118/apartments/internal/models"
)

// ApartmentRepository defines the interface for apartment listing data access.
// Every call runs in its own database session bound to ctx and releases it
// before returning, whether the call succeeds or fails.
type ApartmentRepository interface {
	// Create inserts a listing and sets its ID to the value assigned by the database.
	Create(ctx context.Context, apartment *models.Apartment) error

	// List returns every listing matching all constraints in filter.
	// Returns an empty slice if nothing matches (not an error).
	List(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error)

	// Delete removes the listing with the given id.
	// Returns false, nil if no such listing exists.
	Delete(ctx context.Context, id uint) (bool, error)
}

// NewApartmentRepository returns the repository implementation for db's driver.
func NewApartmentRepository(db *database.Database) (ApartmentRepository, error) {
	switch {
	case db.Gorm != nil:
		return NewGormApartmentRepository(db), nil
	case db.Pool != nil:
		return NewPgxApartmentRepository(db), nil
	default:
		return nil, fmt.Errorf("no connection available for driver %q", db.Driver)
	}
}
