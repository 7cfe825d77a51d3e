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
)

// dateDoc is the stored shape of a suggestion. participants duplicates the
// two user ids so a single multikey index answers per-user queries.
type dateDoc struct {
	ID           string    `bson:"_id"`
	UserAID      string    `bson:"user_a_id"`
	UserBID      string    `bson:"user_b_id"`
	Participants []string  `bson:"participants"`
	Status       string    `bson:"status"`
	Timestamp    time.Time `bson:"timestamp"`
}

func toDateDoc(d *models.DateSuggestion) dateDoc {
	return dateDoc{
		ID:           d.ID,
		UserAID:      d.UserAID,
		UserBID:      d.UserBID,
		Participants: d.Participants(),
		Status:       string(d.Status),
		Timestamp:    toMS(d.Timestamp),
	}
}

func (d dateDoc) model() *models.DateSuggestion {
	return &models.DateSuggestion{
		ID:        d.ID,
		UserAID:   d.UserAID,
		UserBID:   d.UserBID,
		Status:    models.Status(d.Status),
		Timestamp: d.Timestamp.UTC(),
	}
}

// CreateDate inserts a suggestion document
func (s *Store) CreateDate(ctx context.Context, date *models.DateSuggestion) error {
	const op = "storage/mongo/CreateDate"

	if _, err := s.dates.InsertOne(ctx, toDateDoc(date)); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetDate returns a suggestion by id
func (s *Store) GetDate(ctx context.Context, id string) (*models.DateSuggestion, error) {
	const op = "storage/mongo/GetDate"

	var doc dateDoc
	if err := s.dates.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.model(), nil
}

// UpdateDate sets the patched fields with an update pipeline so that
// participants is recomputed from the resulting user ids in the same write.
func (s *Store) UpdateDate(ctx context.Context, id string, patch repository.DatePatch) error {
	const op = "storage/mongo/UpdateDate"

	set := bson.D{}
	if patch.UserAID != nil {
		set = append(set, bson.E{Key: "user_a_id", Value: *patch.UserAID})
	}
	if patch.UserBID != nil {
		set = append(set, bson.E{Key: "user_b_id", Value: *patch.UserBID})
	}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*patch.Status)})
	}
	if len(set) == 0 {
		return nil
	}

	pipeline := mongodriver.Pipeline{
		{{Key: "$set", Value: set}},
		{{Key: "$set", Value: bson.D{{Key: "participants", Value: bson.A{"$user_a_id", "$user_b_id"}}}}},
	}

	res, err := s.dates.UpdateByID(ctx, id, pipeline)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

// DeleteDate hard-deletes a suggestion
func (s *Store) DeleteDate(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteDate"

	res, err := s.dates.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

// ListDatesByUser queries the participants index
func (s *Store) ListDatesByUser(ctx context.Context, userID string, status *models.Status) ([]*models.DateSuggestion, error) {
	const op = "storage/mongo/ListDatesByUser"

	filter := bson.D{{Key: "participants", Value: userID}}
	if status != nil {
		filter = append(filter, bson.E{Key: "status", Value: string(*status)})
	}

	cur, err := s.dates.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	dates := make([]*models.DateSuggestion, 0)
	for cur.Next(ctx) {
		var doc dateDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		dates = append(dates, doc.model())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return dates, nil
}

// PairExists looks for a suggestion whose participants contain both users
func (s *Store) PairExists(ctx context.Context, a, b string) (bool, error) {
	const op = "storage/mongo/PairExists"

	filter := bson.D{{Key: "participants", Value: bson.D{{Key: "$all", Value: bson.A{a, b}}}}}
	n, err := s.dates.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
