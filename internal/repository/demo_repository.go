package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
)

type DemoRequestRepository struct {
	collection *mongo.Collection
}

func NewDemoRequestRepository(db *mongo.Database) *DemoRequestRepository {
	return &DemoRequestRepository{collection: db.Collection(demoRequestsCollection)}
}

func (r *DemoRequestRepository) Create(ctx context.Context, request *domain.DemoRequest) error {
	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to insert demo request: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid
	}
	return nil
}

func (r *DemoRequestRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.DemoRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list demo requests: %w", err)
	}
	var requests []domain.DemoRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode demo requests: %w", err)
	}
	return requests, nil
}

func (r *DemoRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.DemoStatus) (*domain.DemoRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request domain.DemoRequest
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDemoRequestNotFound
		}
		return nil, fmt.Errorf("failed to update demo request: %w", err)
	}
	return &request, nil
}
