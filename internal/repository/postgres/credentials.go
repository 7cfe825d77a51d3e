package postgres

import (
	"context"
	"errors"
	"fmt"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/jackc/pgx/v5"
)

// CreateCredential stores login data of a new user
func (s *Store) CreateCredential(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO credentials (user_id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.Exec(ctx, query, cred.UserID, cred.Email, cred.PasswordHash, cred.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", repository.ErrConflict)
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// GetCredentialByEmail retrieves login data by email, case-insensitively
func (s *Store) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query := `
		SELECT user_id, email, password_hash, created_at
		FROM credentials
		WHERE lower(email) = lower($1)
	`
	var cred models.Credential
	err := s.db.QueryRow(ctx, query, email).Scan(&cred.UserID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("credential not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

// DeleteCredential removes login data of a user
func (s *Store) DeleteCredential(ctx context.Context, userID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM credentials WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("credential not found: %w", repository.ErrNotFound)
	}
	return nil
}
