package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/apartments/internal/database"
	"github.com/stwalsh4118/apartments/internal/models"
)

const apartmentColumns = `id, appartment_type, num_rooms, floor_area, floor, improvement, address`

// pgxApartmentRepository stores listings in PostgreSQL through a pgx pool.
type pgxApartmentRepository struct {
	db *database.Database
}

// NewPgxApartmentRepository creates an ApartmentRepository backed by db.Pool.
func NewPgxApartmentRepository(db *database.Database) ApartmentRepository {
	return &pgxApartmentRepository{
		db: db,
	}
}

// Create inserts the listing and reads back the id assigned by the sequence.
func (r *pgxApartmentRepository) Create(ctx context.Context, apartment *models.Apartment) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	query := `
		INSERT INTO appartments (appartment_type, num_rooms, floor_area, floor, improvement, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			string(apartment.AppartmentType),
			apartment.NumRooms,
			apartment.FloorArea,
			apartment.Floor,
			apartment.Improvement,
			apartment.Address,
		).Scan(&id)
	})
	if err != nil {
		return fmt.Errorf("failed to insert apartment: %w", err)
	}

	apartment.ID = uint(id)
	return nil
}

// List builds a WHERE clause from the constraints present in filter.
// Rows are ordered by id so results are stable across calls.
func (r *pgxApartmentRepository) List(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query, args := buildListQuery(filter)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query apartments: %w", err)
	}
	defer rows.Close()

	apartments := []models.Apartment{}
	for rows.Next() {
		apartment, err := scanApartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan apartment row: %w", err)
		}
		apartments = append(apartments, apartment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating apartment rows: %w", err)
	}

	return apartments, nil
}

// Delete locks the row, then removes it in the same transaction.
func (r *pgxApartmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	found := true
	err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		var existing int64
		err := tx.QueryRow(ctx, `SELECT id FROM appartments WHERE id = $1 FOR UPDATE`, int64(id)).Scan(&existing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				found = false
				return nil
			}
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM appartments WHERE id = $1`, existing)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete apartment %d: %w", id, err)
	}

	return found, nil
}

// buildListQuery returns the SELECT statement and positional arguments for filter.
func buildListQuery(filter models.ApartmentFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.NumRooms != nil {
		add("num_rooms", *filter.NumRooms)
	}
	if filter.FloorArea != nil {
		add("floor_area", *filter.FloorArea)
	}
	if filter.Floor != nil {
		add("floor", *filter.Floor)
	}
	if filter.AppartmentType != nil {
		add("appartment_type", string(*filter.AppartmentType))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(apartmentColumns)
	sb.WriteString(" FROM appartments")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY id")

	return sb.String(), args
}

func scanApartment(row pgx.Row) (models.Apartment, error) {
	var (
		apartment     models.Apartment
		id            int64
		apartmentType string
	)
	err := row.Scan(
		&id,
		&apartmentType,
		&apartment.NumRooms,
		&apartment.FloorArea,
		&apartment.Floor,
		&apartment.Improvement,
		&apartment.Address,
	)
	if err != nil {
		return models.Apartment{}, err
	}

	apartment.ID = uint(id)
	apartment.AppartmentType = models.ApartmentType(apartmentType)
	return apartment, nil
}
