package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stwalsh4118/apartments/internal/database"
	"github.com/stwalsh4118/apartments/internal/models"
	"gorm.io/gorm"
)

// gormApartmentRepository stores listings through GORM (used with SQLite).
type gormApartmentRepository struct {
	db *database.Database
}

// NewGormApartmentRepository creates an ApartmentRepository backed by db.Gorm.
func NewGormApartmentRepository(db *database.Database) ApartmentRepository {
	return &gormApartmentRepository{
		db: db,
	}
}

// Create inserts the listing inside a transaction; GORM fills in the ID.
func (r *gormApartmentRepository) Create(ctx context.Context, apartment *models.Apartment) error {
	session, err := r.db.Session(ctx)
	if err != nil {
		return err
	}

	err = session.Transaction(func(tx *gorm.DB) error {
		return tx.Create(apartment).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert apartment: %w", err)
	}

	return nil
}

// List builds a query that applies only the constraints present in filter.
// Rows are ordered by id so results are stable across calls.
func (r *gormApartmentRepository) List(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error) {
	session, err := r.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	query := session.Model(&models.Apartment{})
	if filter.NumRooms != nil {
		query = query.Where("num_rooms = ?", *filter.NumRooms)
	}
	if filter.FloorArea != nil {
		query = query.Where("floor_area = ?", *filter.FloorArea)
	}
	if filter.Floor != nil {
		query = query.Where("floor = ?", *filter.Floor)
	}
	if filter.AppartmentType != nil {
		query = query.Where("appartment_type = ?", string(*filter.AppartmentType))
	}

	apartments := []models.Apartment{}
	if err := query.Order("id").Find(&apartments).Error; err != nil {
		return nil, fmt.Errorf("failed to query apartments: %w", err)
	}

	return apartments, nil
}

// Delete looks the listing up and removes it in one transaction.
func (r *gormApartmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	session, err := r.db.Session(ctx)
	if err != nil {
		return false, err
	}

	found := true
	err = session.Transaction(func(tx *gorm.DB) error {
		var apartment models.Apartment
		if err := tx.First(&apartment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		return tx.Delete(&apartment).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete apartment %d: %w", id, err)
	}

	return found, nil
}
