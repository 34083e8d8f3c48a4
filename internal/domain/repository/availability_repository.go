package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type AvailabilityRepository interface {
	CreateRecurring(ctx context.Context, a *model.UserAvailability) error
	FindRecurringByID(ctx context.Context, id string) (*model.UserAvailability, error)
	ListRecurringForUser(ctx context.Context, userID string) ([]model.UserAvailability, error)
	UpdateRecurring(ctx context.Context, a *model.UserAvailability) error
	DeleteRecurring(ctx context.Context, id string) error

	CreateSpecial(ctx context.Context, s *model.SpecialAvailability) error
	FindSpecialByID(ctx context.Context, id string) (*model.SpecialAvailability, error)
	ListSpecialForUser(ctx context.Context, userID string) ([]model.SpecialAvailability, error)
	UpdateSpecial(ctx context.Context, s *model.SpecialAvailability) error
	DeleteSpecial(ctx context.Context, id string) error
}

type pgAvailabilityRepository struct {
	db *sql.DB
}

func NewPgAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &pgAvailabilityRepository{db: db}
}

func (r *pgAvailabilityRepository) CreateRecurring(ctx context.Context, a *model.UserAvailability) error {
	query := `INSERT INTO user_availability (id, user_id, day_of_week, start_time, end_time, recurrence_type, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.DayOfWeek, a.StartTime, a.EndTime, a.RecurrenceType, a.IsActive)
	if err != nil {
		return fmt.Errorf("pgAvailabilityRepository.CreateRecurring: %w", err)
	}
	return nil
}

func (r *pgAvailabilityRepository) FindRecurringByID(ctx context.Context, id string) (*model.UserAvailability, error) {
	query := `SELECT id, user_id, day_of_week, start_time, end_time, recurrence_type, is_active, created_at, updated_at
	          FROM user_availability WHERE id = $1`
	a := &model.UserAvailability{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.RecurrenceType, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAvailabilityRepository.FindRecurringByID: %w", err)
	}
	return a, nil
}

func (r *pgAvailabilityRepository) ListRecurringForUser(ctx context.Context, userID string) ([]model.UserAvailability, error) {
	query := `SELECT id, user_id, day_of_week, start_time, end_time, recurrence_type, is_active, created_at, updated_at
	          FROM user_availability WHERE user_id = $1 ORDER BY day_of_week, start_time`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgAvailabilityRepository.ListRecurringForUser: %w", err)
	}
	defer rows.Close()

	slots := []model.UserAvailability{}
	for rows.Next() {
		var a model.UserAvailability
		if err := rows.Scan(&a.ID, &a.UserID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.RecurrenceType, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgAvailabilityRepository.ListRecurringForUser scan: %w", err)
		}
		slots = append(slots, a)
	}
	return slots, rows.Err()
}

func (r *pgAvailabilityRepository) UpdateRecurring(ctx context.Context, a *model.UserAvailability) error {
	query := `UPDATE user_availability SET day_of_week = $2, start_time = $3, end_time = $4,
	          recurrence_type = $5, is_active = $6, updated_at = NOW()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, a.ID, a.DayOfWeek, a.StartTime, a.EndTime, a.RecurrenceType, a.IsActive)
	if err != nil {
		return fmt.Errorf("pgAvailabilityRepository.UpdateRecurring: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAvailabilityRepository) DeleteRecurring(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgAvailabilityRepository.DeleteRecurring: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAvailabilityRepository) CreateSpecial(ctx context.Context, s *model.SpecialAvailability) error {
	query := `INSERT INTO special_availability (id, user_id, date, is_available, start_time, end_time, note)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Date, s.IsAvailable, s.StartTime, s.EndTime, s.Note)
	if err != nil {
		return fmt.Errorf("pgAvailabilityRepository.CreateSpecial: %w", err)
	}
	return nil
}

func (r *pgAvailabilityRepository) FindSpecialByID(ctx context.Context, id string) (*model.SpecialAvailability, error) {
	query := `SELECT id, user_id, date, is_available, start_time, end_time, note, created_at, updated_at
	          FROM special_availability WHERE id = $1`
	s := &model.SpecialAvailability{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Date, &s.IsAvailable, &s.StartTime, &s.EndTime, &s.Note, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAvailabilityRepository.FindSpecialByID: %w", err)
	}
	return s, nil
}

func (r *pgAvailabilityRepository) ListSpecialForUser(ctx context.Context, userID string) ([]model.SpecialAvailability, error) {
	query := `SELECT id, user_id, date, is_available, start_time, end_time, note, created_at, updated_at
	          FROM special_availability WHERE user_id = $1 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgAvailabilityRepository.ListSpecialForUser: %w", err)
	}
	defer rows.Close()

	overrides := []model.SpecialAvailability{}
	for rows.Next() {
		var s model.SpecialAvailability
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.IsAvailable, &s.StartTime, &s.EndTime, &s.Note, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgAvailabilityRepository.ListSpecialForUser scan: %w", err)
		}
		overrides = append(overrides, s)
	}
	return overrides, rows.Err()
}

func (r *pgAvailabilityRepository) UpdateSpecial(ctx context.Context, s *model.SpecialAvailability) error {
	query := `UPDATE special_availability SET date = $2, is_available = $3, start_time = $4,
	          end_time = $5, note = $6, updated_at = NOW()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, s.ID, s.Date, s.IsAvailable, s.StartTime, s.EndTime, s.Note)
	if err != nil {
		return fmt.Errorf("pgAvailabilityRepository.UpdateSpecial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAvailabilityRepository) DeleteSpecial(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM special_availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgAvailabilityRepository.DeleteSpecial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
