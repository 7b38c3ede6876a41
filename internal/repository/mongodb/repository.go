package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	suppliesCollection = "food_supplies"
	petsCollection     = "pets"
)

// MongoDBRepository implements the supply and pet persistence interfaces
// against a single MongoDB database.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// EnsureIndexes creates the indexes the engine's guarantees rely on. The
// partial unique index serializes concurrent creates so at most one active
// supply per (pet, category) can ever be inserted.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.supplies().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
		{
			Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "date_finished", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create food_supplies indexes: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) supplies() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(suppliesCollection)
}

func (r *MongoDBRepository) pets() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(petsCollection)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
