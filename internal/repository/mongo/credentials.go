package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type credentialDoc struct {
	UserID       string    `bson:"_id"`
	Email        string    `bson:"email"`
	EmailLower   string    `bson:"email_lower"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// CreateCredential inserts login data; the email_lower index rejects duplicates
func (s *Store) CreateCredential(ctx context.Context, cred *models.Credential) error {
	const op = "storage/mongo/CreateCredential"

	doc := credentialDoc{
		UserID:       cred.UserID,
		Email:        cred.Email,
		EmailLower:   strings.ToLower(cred.Email),
		PasswordHash: cred.PasswordHash,
		CreatedAt:    toMS(cred.CreatedAt),
	}
	if _, err := s.credentials.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCredentialByEmail finds login data by email, case-insensitively
func (s *Store) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	const op = "storage/mongo/GetCredentialByEmail"

	var doc credentialDoc
	err := s.credentials.FindOne(ctx, bson.D{{Key: "email_lower", Value: strings.ToLower(email)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Credential{
		UserID:       doc.UserID,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}

// DeleteCredential removes login data of a user
func (s *Store) DeleteCredential(ctx context.Context, userID string) error {
	const op = "storage/mongo/DeleteCredential"

	res, err := s.credentials.DeleteOne(ctx, bson.D{{Key: "_id", Value: userID}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}
