package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second

	propertiesCollection = "properties"
	enquiriesCollection  = "enquiries"
	adminsCollection     = "admins"
)

// NewClient connects to MongoDB and verifies the primary is reachable.
func NewClient(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancelConnect := context.WithTimeout(ctx, connectTimeout)
	defer cancelConnect()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, pingTimeout)
	defer cancelPing()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates every index the repositories rely on. It is safe to
// run repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		propertiesCollection: {
			{Keys: bsonD("city", 1)},
			{Keys: bsonD("city", 1, "price", 1)},
			{Keys: bsonD("createdAt", -1)},
		},
		enquiriesCollection: {
			{Keys: bsonD("propertyId", 1, "createdAt", -1)},
			{Keys: bsonD("status", 1, "createdAt", -1)},
		},
		adminsCollection: {
			{Keys: bsonD("email", 1), Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
