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

const userColumns = `id, name, email, bio, age, gender, interests, preferences, photo_urls, push_token, created_at`

// CreateUser creates a new user
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Bio, user.Age, user.Gender,
		repository.CopyStrings(user.Interests),
		repository.CopyStrings(user.Preferences),
		repository.CopyStrings(user.PhotoURLs),
		user.PushToken, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", repository.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Bio, &user.Age, &user.Gender,
		&user.Interests, &user.Preferences, &user.PhotoURLs, &user.PushToken, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUser updates the fields set in the patch
func (s *Store) UpdateUser(ctx context.Context, id string, patch repository.UserPatch) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Bio != nil {
		set("bio", *patch.Bio)
	}
	if patch.Age != nil {
		set("age", *patch.Age)
	}
	if patch.Gender != nil {
		set("gender", *patch.Gender)
	}
	if patch.Interests != nil {
		set("interests", repository.CopyStrings(*patch.Interests))
	}
	if patch.Preferences != nil {
		set("preferences", repository.CopyStrings(*patch.Preferences))
	}
	if patch.PhotoURLs != nil {
		set("photo_urls", repository.CopyStrings(*patch.PhotoURLs))
	}
	if patch.PushToken != nil {
		set("push_token", *patch.PushToken)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	return nil
}

// DeleteUser deletes a user by ID
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	return nil
}

// ListUserIDs returns the ids of all users
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user ids: %w", err)
	}
	return ids, nil
}
