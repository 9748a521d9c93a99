package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	pkgconfig "github.com/rakeshgadupudi-git/ImperialHub/pkg/config"
)

const (
	productsCollection     = "products"
	usersCollection        = "users"
	chatMessagesCollection = "chat_messages"
	demoRequestsCollection = "demo_requests"
	purchasesCollection    = "purchases"
	ordersCollection       = "orders"
)

// NewMongoDatabase connects to the configured MongoDB deployment and
// verifies it is reachable before handing the database out.
func NewMongoDatabase(ctx context.Context, cfg *pkgconfig.Config) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the unique indexes the data model relies on:
// product slugs, user emails and public order identifiers.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{productsCollection, mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique}},
		{usersCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{ordersCollection, mongo.IndexModel{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: unique}},
		{chatMessagesCollection, mongo.IndexModel{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: 1}}}},
		{purchasesCollection, mongo.IndexModel{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "purchaseDate", Value: -1}}}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}
