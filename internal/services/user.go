package services

import (
	"context"
	"errors"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// UserService handles profile CRUD
type UserService struct {
	users    repository.UserStore
	creds    repository.CredentialStore
	validate *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(users repository.UserStore, creds repository.CredentialStore) *UserService {
	return &UserService{
		users:    users,
		creds:    creds,
		validate: validator.New(),
	}
}

// Get returns a profile by id
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr("services.UserService.Get", err)
	}
	return user, nil
}

// Update patches the given profile fields and returns the stored profile
func (s *UserService) Update(ctx context.Context, id string, patch repository.UserPatch) (*models.User, error) {
	const op = "services.UserService.Update"

	if patch.Empty() {
		return nil, Invalid("no fields to update")
	}
	if patch.Email != nil {
		if err := s.validate.Var(*patch.Email, "required,email"); err != nil {
			return nil, Invalid("invalid email")
		}
	}
	if patch.Age != nil && (*patch.Age < 0 || *patch.Age > 150) {
		return nil, Invalid("invalid age")
	}

	if err := s.users.UpdateUser(ctx, id, patch); err != nil {
		return nil, storeErr(op, err)
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr(op, err)
	}

	log.Info().Str("user_id", id).Msg("User updated")
	return user, nil
}

// Delete removes a profile together with its login credential
func (s *UserService) Delete(ctx context.Context, id string) error {
	const op = "services.UserService.Delete"

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return storeErr(op, err)
	}
	if err := s.creds.DeleteCredential(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storeErr(op, err)
	}

	log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}
