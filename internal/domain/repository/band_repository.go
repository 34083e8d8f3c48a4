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

type BandRepository interface {
	CreateBand(ctx context.Context, band *model.Band) error
	FindBandByID(ctx context.Context, id string) (*model.Band, error)
	FindBandBySlug(ctx context.Context, slug string) (*model.Band, error)
	ListBandsForUser(ctx context.Context, userID string) ([]model.Band, error)
	UpdateBand(ctx context.Context, band *model.Band) error

	AddMember(ctx context.Context, member *model.BandMember) error
	FindMember(ctx context.Context, bandID, userID string) (*model.BandMember, error)
	ListMembers(ctx context.Context, bandID string) ([]model.BandMember, error)
	UpdateMemberRole(ctx context.Context, bandID, userID string, role model.BandRole) error
	RemoveMember(ctx context.Context, bandID, userID string) error
}

type pgBandRepository struct {
	db *sql.DB
}

func NewPgBandRepository(db *sql.DB) BandRepository {
	return &pgBandRepository{db: db}
}

func (r *pgBandRepository) CreateBand(ctx context.Context, band *model.Band) error {
	query := `INSERT INTO bands (id, name, slug, description, created_by)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, band.ID, band.Name, band.Slug, band.Description, band.CreatedByID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("band with given slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgBandRepository.CreateBand: %w", err)
	}
	return nil
}

func (r *pgBandRepository) FindBandByID(ctx context.Context, id string) (*model.Band, error) {
	query := `SELECT id, name, slug, description, created_by, created_at, updated_at
	          FROM bands WHERE id = $1`
	return r.scanBand(r.db.QueryRowContext(ctx, query, id), "FindBandByID")
}

func (r *pgBandRepository) FindBandBySlug(ctx context.Context, slug string) (*model.Band, error) {
	query := `SELECT id, name, slug, description, created_by, created_at, updated_at
	          FROM bands WHERE slug = $1`
	return r.scanBand(r.db.QueryRowContext(ctx, query, slug), "FindBandBySlug")
}

func (r *pgBandRepository) ListBandsForUser(ctx context.Context, userID string) ([]model.Band, error) {
	query := `SELECT b.id, b.name, b.slug, b.description, b.created_by, b.created_at, b.updated_at
	          FROM bands b
	          JOIN band_members m ON m.band_id = b.id
	          WHERE m.user_id = $1
	          ORDER BY b.name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgBandRepository.ListBandsForUser: %w", err)
	}
	defer rows.Close()

	bands := []model.Band{}
	for rows.Next() {
		var b model.Band
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.CreatedByID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgBandRepository.ListBandsForUser scan: %w", err)
		}
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

func (r *pgBandRepository) UpdateBand(ctx context.Context, band *model.Band) error {
	query := `UPDATE bands SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, band.ID, band.Name, band.Description)
	if err != nil {
		return fmt.Errorf("pgBandRepository.UpdateBand: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBandRepository) AddMember(ctx context.Context, member *model.BandMember) error {
	query := `INSERT INTO band_members (id, band_id, user_id, role)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, member.ID, member.BandID, member.UserID, member.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // already a member
				return fmt.Errorf("user is already a member of the band: %w", common.ErrConflict)
			}
			if pgErr.Code == "23503" { // band or user does not exist
				return fmt.Errorf("band or user not found: %w", common.ErrNotFound)
			}
		}
		return fmt.Errorf("pgBandRepository.AddMember: %w", err)
	}
	return nil
}

func (r *pgBandRepository) FindMember(ctx context.Context, bandID, userID string) (*model.BandMember, error) {
	query := `SELECT id, band_id, user_id, role, created_at
	          FROM band_members WHERE band_id = $1 AND user_id = $2`
	m := &model.BandMember{}
	err := r.db.QueryRowContext(ctx, query, bandID, userID).Scan(&m.ID, &m.BandID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBandRepository.FindMember: %w", err)
	}
	return m, nil
}

func (r *pgBandRepository) ListMembers(ctx context.Context, bandID string) ([]model.BandMember, error) {
	query := `SELECT m.id, m.band_id, m.user_id, m.role, m.created_at, u.first_name, u.last_name, u.email
	          FROM band_members m
	          JOIN users u ON u.id = m.user_id
	          WHERE m.band_id = $1
	          ORDER BY m.created_at`
	rows, err := r.db.QueryContext(ctx, query, bandID)
	if err != nil {
		return nil, fmt.Errorf("pgBandRepository.ListMembers: %w", err)
	}
	defer rows.Close()

	members := []model.BandMember{}
	for rows.Next() {
		var m model.BandMember
		if err := rows.Scan(&m.ID, &m.BandID, &m.UserID, &m.Role, &m.CreatedAt, &m.FirstName, &m.LastName, &m.Email); err != nil {
			return nil, fmt.Errorf("pgBandRepository.ListMembers scan: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgBandRepository) UpdateMemberRole(ctx context.Context, bandID, userID string, role model.BandRole) error {
	query := `UPDATE band_members SET role = $3 WHERE band_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, bandID, userID, role)
	if err != nil {
		return fmt.Errorf("pgBandRepository.UpdateMemberRole: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBandRepository) RemoveMember(ctx context.Context, bandID, userID string) error {
	query := `DELETE FROM band_members WHERE band_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, bandID, userID)
	if err != nil {
		return fmt.Errorf("pgBandRepository.RemoveMember: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBandRepository) scanBand(row *sql.Row, op string) (*model.Band, error) {
	band := &model.Band{}
	err := row.Scan(&band.ID, &band.Name, &band.Slug, &band.Description, &band.CreatedByID, &band.CreatedAt, &band.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBandRepository.%s: %w", op, err)
	}
	return band, nil
}
