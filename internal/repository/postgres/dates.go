package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/jackc/pgx/v5"
)

// CreateDate creates a new date suggestion
func (s *Store) CreateDate(ctx context.Context, date *models.DateSuggestion) error {
	query := `
		INSERT INTO date_suggestions (id, user_a_id, user_b_id, status, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.Exec(ctx, query, date.ID, date.UserAID, date.UserBID, string(date.Status), date.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create date: %w", repository.ErrConflict)
		}
		return fmt.Errorf("failed to create date: %w", err)
	}
	return nil
}

// GetDate retrieves a date suggestion by ID
func (s *Store) GetDate(ctx context.Context, id string) (*models.DateSuggestion, error) {
	query := `
		SELECT id, user_a_id, user_b_id, status, timestamp
		FROM date_suggestions
		WHERE id = $1
	`
	rows, err := s.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get date: %w", err)
	}

	date, err := pgx.CollectExactlyOneRow(rows, scanDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("date not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get date: %w", err)
	}
	return date, nil
}

// UpdateDate updates the fields set in the patch
func (s *Store) UpdateDate(ctx context.Context, id string, patch repository.DatePatch) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.UserAID != nil {
		set("user_a_id", *patch.UserAID)
	}
	if patch.UserBID != nil {
		set("user_b_id", *patch.UserBID)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE date_suggestions SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update date: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("date not found: %w", repository.ErrNotFound)
	}
	return nil
}

// DeleteDate deletes a date suggestion by ID
func (s *Store) DeleteDate(ctx context.Context, id string) error {
	query := `DELETE FROM date_suggestions WHERE id = $1`
	result, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete date: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("date not found: %w", repository.ErrNotFound)
	}
	return nil
}

// ListDatesByUser retrieves every suggestion the user takes part in with one
// query over the participant indexes
func (s *Store) ListDatesByUser(ctx context.Context, userID string, status *models.Status) ([]*models.DateSuggestion, error) {
	query := `
		SELECT id, user_a_id, user_b_id, status, timestamp
		FROM date_suggestions
		WHERE (user_a_id = $1 OR user_b_id = $1)
	`
	args := []any{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}

	dates, err := pgx.CollectRows(rows, scanDate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dates: %w", err)
	}
	if dates == nil {
		dates = []*models.DateSuggestion{}
	}
	return dates, nil
}

// PairExists checks if the two users were already suggested to each other
func (s *Store) PairExists(ctx context.Context, a, b string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM date_suggestions
			WHERE (user_a_id = $1 AND user_b_id = $2) OR (user_a_id = $2 AND user_b_id = $1)
		)
	`
	var exists bool
	if err := s.db.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pair: %w", err)
	}
	return exists, nil
}

func scanDate(row pgx.CollectableRow) (*models.DateSuggestion, error) {
	var (
		date   models.DateSuggestion
		status string
	)
	if err := row.Scan(&date.ID, &date.UserAID, &date.UserBID, &status, &date.Timestamp); err != nil {
		return nil, err
	}
	date.Status = models.Status(status)
	return &date, nil
}
