package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) error
	FindByID(ctx context.Context, id string) (*model.Venue, error)
	List(ctx context.Context) ([]model.Venue, error)
	Update(ctx context.Context, venue *model.Venue) error
	Delete(ctx context.Context, id string) error
}

type pgVenueRepository struct {
	db *sql.DB
}

func NewPgVenueRepository(db *sql.DB) VenueRepository {
	return &pgVenueRepository{db: db}
}

func (r *pgVenueRepository) Create(ctx context.Context, v *model.Venue) error {
	query := `INSERT INTO venues (id, name, address, capacity, hourly_rate, contact_name, contact_phone)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.Name, v.Address, v.Capacity, v.HourlyRate, v.ContactName, v.ContactPhone)
	if err != nil {
		return fmt.Errorf("pgVenueRepository.Create: %w", err)
	}
	return nil
}

func (r *pgVenueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	query := `SELECT id, name, address, capacity, hourly_rate, contact_name, contact_phone, created_at, updated_at
	          FROM venues WHERE id = $1`
	v := &model.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Address, &v.Capacity, &v.HourlyRate, &v.ContactName, &v.ContactPhone, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgVenueRepository.FindByID: %w", err)
	}
	return v, nil
}

func (r *pgVenueRepository) List(ctx context.Context) ([]model.Venue, error) {
	query := `SELECT id, name, address, capacity, hourly_rate, contact_name, contact_phone, created_at, updated_at
	          FROM venues ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgVenueRepository.List: %w", err)
	}
	defer rows.Close()

	venues := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.HourlyRate, &v.ContactName, &v.ContactPhone, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgVenueRepository.List scan: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *pgVenueRepository) Update(ctx context.Context, v *model.Venue) error {
	query := `UPDATE venues SET name = $2, address = $3, capacity = $4, hourly_rate = $5,
	          contact_name = $6, contact_phone = $7, updated_at = NOW()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, v.ID, v.Name, v.Address, v.Capacity, v.HourlyRate, v.ContactName, v.ContactPhone)
	if err != nil {
		return fmt.Errorf("pgVenueRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgVenueRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgVenueRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
