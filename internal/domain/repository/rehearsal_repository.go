package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type RehearsalRepository interface {
	Create(ctx context.Context, rehearsal *model.Rehearsal) error
	FindByID(ctx context.Context, id string) (*model.Rehearsal, error)
	ListByBand(ctx context.Context, bandID string) ([]model.Rehearsal, error)
	Update(ctx context.Context, rehearsal *model.Rehearsal) error
	Delete(ctx context.Context, id string) error
}

type pgRehearsalRepository struct {
	db *sql.DB
}

func NewPgRehearsalRepository(db *sql.DB) RehearsalRepository {
	return &pgRehearsalRepository{db: db}
}

func (r *pgRehearsalRepository) Create(ctx context.Context, reh *model.Rehearsal) error {
	query := `INSERT INTO rehearsals (id, band_id, venue_id, title, starts_at, ends_at, notes, status, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		reh.ID, reh.BandID, reh.VenueID, reh.Title, reh.StartsAt, reh.EndsAt, reh.Notes, reh.Status, reh.CreatedByID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // band or venue missing
			return fmt.Errorf("band or venue not found: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgRehearsalRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRehearsalRepository) FindByID(ctx context.Context, id string) (*model.Rehearsal, error) {
	query := `SELECT id, band_id, venue_id, title, starts_at, ends_at, notes, status, created_by, created_at, updated_at
	          FROM rehearsals WHERE id = $1`
	reh := &model.Rehearsal{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reh.ID, &reh.BandID, &reh.VenueID, &reh.Title, &reh.StartsAt, &reh.EndsAt,
		&reh.Notes, &reh.Status, &reh.CreatedByID, &reh.CreatedAt, &reh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRehearsalRepository.FindByID: %w", err)
	}
	return reh, nil
}

func (r *pgRehearsalRepository) ListByBand(ctx context.Context, bandID string) ([]model.Rehearsal, error) {
	query := `SELECT id, band_id, venue_id, title, starts_at, ends_at, notes, status, created_by, created_at, updated_at
	          FROM rehearsals WHERE band_id = $1 ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, query, bandID)
	if err != nil {
		return nil, fmt.Errorf("pgRehearsalRepository.ListByBand: %w", err)
	}
	defer rows.Close()

	rehearsals := []model.Rehearsal{}
	for rows.Next() {
		var reh model.Rehearsal
		if err := rows.Scan(
			&reh.ID, &reh.BandID, &reh.VenueID, &reh.Title, &reh.StartsAt, &reh.EndsAt,
			&reh.Notes, &reh.Status, &reh.CreatedByID, &reh.CreatedAt, &reh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgRehearsalRepository.ListByBand scan: %w", err)
		}
		rehearsals = append(rehearsals, reh)
	}
	return rehearsals, rows.Err()
}

func (r *pgRehearsalRepository) Update(ctx context.Context, reh *model.Rehearsal) error {
	query := `UPDATE rehearsals SET venue_id = $2, title = $3, starts_at = $4, ends_at = $5,
	          notes = $6, status = $7, updated_at = NOW()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, reh.ID, reh.VenueID, reh.Title, reh.StartsAt, reh.EndsAt, reh.Notes, reh.Status)
	if err != nil {
		return fmt.Errorf("pgRehearsalRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgRehearsalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rehearsals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgRehearsalRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
