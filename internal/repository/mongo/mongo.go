// Package mongo stores users, date suggestions and credentials in MongoDB.
package mongo

import (
	"context"
	"fmt"

	"dating-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection       = "users"
	datesCollection       = "dates"
	credentialsCollection = "credentials"
	defaultDBName         = "dating"
)

// Store is a thin adapter over the MongoDB collections
type Store struct {
	client      *mongodriver.Client
	db          *mongodriver.Database
	users       *mongodriver.Collection
	dates       *mongodriver.Collection
	credentials *mongodriver.Collection
}

var _ repository.Store = (*Store)(nil)

// New connects to MongoDB, pings it and ensures the indexes exist
func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	if database == "" {
		database = defaultDBName
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(database)
	s := &Store{
		client:      cli,
		db:          db,
		users:       db.Collection(usersCollection),
		dates:       db.Collection(datesCollection),
		credentials: db.Collection(credentialsCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	return s, nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ensureIndexes creates:
//   - a multikey index on dates.participants (+status) for per-user queries
//   - a unique index on credentials.email_lower
//   - an index on users.created_at for the id scan order
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.dates.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "participants", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("participants_status"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo ensure date indexes: %w", err)
	}

	_, err = s.credentials.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "email_lower", Value: 1}},
		Options: options.Index().SetName("email_lower_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure credential indexes: %w", err)
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName("created_at"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}
	return nil
}
