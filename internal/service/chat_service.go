package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
)

type ChatService struct {
	messages ChatStore
	logger   *zap.Logger
}

func NewChatService(messages ChatStore, logger *zap.Logger) *ChatService {
	return &ChatService{messages: messages, logger: logger}
}

func (s *ChatService) Send(ctx context.Context, req domain.SendMessageRequest) (*domain.ChatMessage, error) {
	message := &domain.ChatMessage{
		ProductID:    req.ProductID,
		SenderID:     req.SenderID,
		SenderName:   req.SenderName,
		ReceiverID:   req.ReceiverID,
		ReceiverName: req.ReceiverName,
		Message:      req.Message,
		Read:         false,
		CreatedAt:    time.Now(),
	}

	if err := s.messages.Insert(ctx, message); err != nil {
		s.logger.Error("Failed to send message", zap.Error(err))
		return nil, err
	}
	return message, nil
}

func (s *ChatService) Conversation(ctx context.Context, productID, userID, otherUserID primitive.ObjectID) ([]domain.ChatMessage, error) {
	messages, err := s.messages.ListConversation(ctx, productID, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return messages, nil
}

// Conversations folds the user's messages into one inbox entry per
// counterpart: the most recent exchanged message plus the number of that
// counterpart's messages still unread.
func (s *ChatService) Conversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	messages, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return SummarizeConversations(userID, messages), nil
}

// SummarizeConversations expects messages ordered most recent first and
// keeps that ordering for the resulting conversation list.
func SummarizeConversations(userID primitive.ObjectID, messages []domain.ChatMessage) []domain.Conversation {
	index := make(map[primitive.ObjectID]int)
	conversations := []domain.Conversation{}

	for _, msg := range messages {
		otherID := msg.SenderID
		otherName := msg.SenderName
		if msg.SenderID == userID {
			otherID = msg.ReceiverID
			otherName = msg.ReceiverName
		}

		i, seen := index[otherID]
		if !seen {
			index[otherID] = len(conversations)
			conversations = append(conversations, domain.Conversation{
				OtherUserID:     otherID,
				ProductID:       msg.ProductID,
				OtherUserName:   otherName,
				LastMessage:     msg.Message,
				LastMessageTime: msg.CreatedAt,
			})
			i = index[otherID]
		}

		if msg.SenderID != userID && !msg.Read {
			conversations[i].UnreadCount++
		}
	}

	return conversations
}

func (s *ChatService) MarkRead(ctx context.Context, productID, userID, otherUserID primitive.ObjectID) error {
	return s.messages.MarkRead(ctx, productID, userID, otherUserID)
}
