package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB DateTime keeps milliseconds only.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

// CreateUser inserts a user document keyed by the user id
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage/mongo/CreateUser"

	doc := *user
	doc.CreatedAt = toMS(doc.CreatedAt)
	doc.Interests = repository.CopyStrings(doc.Interests)
	doc.Preferences = repository.CopyStrings(doc.Preferences)
	doc.PhotoURLs = repository.CopyStrings(doc.PhotoURLs)

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser returns a user by id
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage/mongo/GetUser"

	var out models.User
	if err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.CreatedAt = out.CreatedAt.UTC()
	out.Interests = repository.CopyStrings(out.Interests)
	out.Preferences = repository.CopyStrings(out.Preferences)
	out.PhotoURLs = repository.CopyStrings(out.PhotoURLs)
	return &out, nil
}

// UpdateUser sets the patched fields on the user document
func (s *Store) UpdateUser(ctx context.Context, id string, patch repository.UserPatch) error {
	const op = "storage/mongo/UpdateUser"

	set := bson.D{}
	add := func(key string, value any) { set = append(set, bson.E{Key: key, Value: value}) }

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Bio != nil {
		add("bio", *patch.Bio)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.Interests != nil {
		add("interests", repository.CopyStrings(*patch.Interests))
	}
	if patch.Preferences != nil {
		add("preferences", repository.CopyStrings(*patch.Preferences))
	}
	if patch.PhotoURLs != nil {
		add("photo_urls", repository.CopyStrings(*patch.PhotoURLs))
	}
	if patch.PushToken != nil {
		add("push_token", *patch.PushToken)
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.users.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

// DeleteUser hard-deletes a user document
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteUser"

	res, err := s.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

// ListUserIDs streams the _id of every user document
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	const op = "storage/mongo/ListUserIDs"

	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := s.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return ids, nil
}
