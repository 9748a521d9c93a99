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

type ChatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{collection: db.Collection(chatMessagesCollection)}
}

func (r *ChatRepository) Insert(ctx context.Context, message *domain.ChatMessage) error {
	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

// ListConversation returns the two users' exchange about one product in
// chronological order.
func (r *ChatRepository) ListConversation(ctx context.Context, productID, userID, otherUserID primitive.ObjectID) ([]domain.ChatMessage, error) {
	filter := bson.M{
		"productId": productID,
		"$or": bson.A{
			bson.M{"senderId": userID, "receiverId": otherUserID},
			bson.M{"senderId": otherUserID, "receiverId": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	var messages []domain.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return messages, nil
}

// ListByUser returns every message the user sent or received, most recent
// first. The inbox summary is folded from this set in the service layer.
func (r *ChatRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"senderId": userID},
			bson.M{"receiverId": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user messages: %w", err)
	}
	var messages []domain.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode user messages: %w", err)
	}
	return messages, nil
}

// MarkRead flags every unread message from otherUser to user about the
// product as read.
func (r *ChatRepository) MarkRead(ctx context.Context, productID, userID, otherUserID primitive.ObjectID) error {
	filter := bson.M{
		"productId":  productID,
		"senderId":   otherUserID,
		"receiverId": userID,
		"read":       false,
	}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark messages as read: %w", err)
	}
	return nil
}
