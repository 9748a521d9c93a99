package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
)

type PurchaseRepository struct {
	collection *mongo.Collection
}

func NewPurchaseRepository(db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{collection: db.Collection(purchasesCollection)}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	result, err := r.collection.InsertOne(ctx, purchase)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		purchase.ID = oid
	}
	return nil
}

// Delete removes a purchase record. Only the checkout compensation path
// uses it; purchases are never deleted through the API.
func (r *PurchaseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}

func (r *PurchaseRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]domain.Purchase, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	var purchases []domain.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode purchases: %w", err)
	}
	return purchases, nil
}

// ListCompletedByProduct returns a product's completed sales, most recent
// first.
func (r *PurchaseRepository) ListCompletedByProduct(ctx context.Context, productID primitive.ObjectID) ([]domain.Purchase, error) {
	filter := bson.M{"productId": productID, "status": domain.PurchaseStatusCompleted}
	opts := options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list product purchases: %w", err)
	}
	var purchases []domain.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode product purchases: %w", err)
	}
	return purchases, nil
}

func (r *PurchaseRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller purchases: %w", err)
	}
	var purchases []domain.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode seller purchases: %w", err)
	}
	return purchases, nil
}

func (r *PurchaseRepository) ListCompletedBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Purchase, error) {
	filter := bson.M{"sellerId": sellerID, "status": domain.PurchaseStatusCompleted}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed seller purchases: %w", err)
	}
	var purchases []domain.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode completed seller purchases: %w", err)
	}
	return purchases, nil
}
