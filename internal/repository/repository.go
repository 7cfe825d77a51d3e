package repository

import (
	"context"
	"errors"

	"dating-backend/internal/models"
)

var (
	// ErrNotFound is returned when the requested document does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint is violated
	ErrConflict = errors.New("conflict")
)

// UserPatch lists the profile fields that can be changed. Nil fields are left untouched.
type UserPatch struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Age         *int      `json:"age,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	Interests   *[]string `json:"interests,omitempty"`
	Preferences *[]string `json:"preferences,omitempty"`
	PhotoURLs   *[]string `json:"photo_urls,omitempty"`
	PushToken   *string   `json:"push_token,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Bio == nil && p.Age == nil &&
		p.Gender == nil && p.Interests == nil && p.Preferences == nil &&
		p.PhotoURLs == nil && p.PushToken == nil
}

// Apply writes the non-nil fields of the patch into u
func (p UserPatch) Apply(u *models.User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Age != nil {
		age := *p.Age
		u.Age = &age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Interests != nil {
		u.Interests = CopyStrings(*p.Interests)
	}
	if p.Preferences != nil {
		u.Preferences = CopyStrings(*p.Preferences)
	}
	if p.PhotoURLs != nil {
		u.PhotoURLs = CopyStrings(*p.PhotoURLs)
	}
	if p.PushToken != nil {
		token := *p.PushToken
		u.PushToken = &token
	}
}

// DatePatch lists the suggestion fields that can be changed administratively
type DatePatch struct {
	UserAID *string        `json:"user_a_id,omitempty"`
	UserBID *string        `json:"user_b_id,omitempty"`
	Status  *models.Status `json:"status,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p DatePatch) Empty() bool {
	return p.UserAID == nil && p.UserBID == nil && p.Status == nil
}

// Apply writes the non-nil fields of the patch into d
func (p DatePatch) Apply(d *models.DateSuggestion) {
	if p.UserAID != nil {
		d.UserAID = *p.UserAID
	}
	if p.UserBID != nil {
		d.UserBID = *p.UserBID
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
}

// UserStore persists user profiles
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) error
	DeleteUser(ctx context.Context, id string) error
	// ListUserIDs returns the ids of every stored user. It is a full scan.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// DateStore persists date suggestions
type DateStore interface {
	CreateDate(ctx context.Context, date *models.DateSuggestion) error
	GetDate(ctx context.Context, id string) (*models.DateSuggestion, error)
	UpdateDate(ctx context.Context, id string, patch DatePatch) error
	DeleteDate(ctx context.Context, id string) error
	// ListDatesByUser returns suggestions where userID is either participant,
	// optionally restricted to one status. Order is not guaranteed.
	ListDatesByUser(ctx context.Context, userID string, status *models.Status) ([]*models.DateSuggestion, error)
	// PairExists reports whether any suggestion already joins a and b, in either order.
	PairExists(ctx context.Context, a, b string) (bool, error)
}

// CredentialStore persists login credentials of the local identity provider
type CredentialStore interface {
	CreateCredential(ctx context.Context, cred *models.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	DeleteCredential(ctx context.Context, userID string) error
}

// Store bundles every collection of the persistent store
type Store interface {
	UserStore
	DateStore
	CredentialStore
	Close(ctx context.Context) error
}

// CopyStrings returns a copy of in that is never nil, so lists encode as [] rather than null
func CopyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
