package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatMessage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	SenderID     primitive.ObjectID `bson:"senderId" json:"senderId"`
	SenderName   string             `bson:"senderName" json:"senderName"`
	ReceiverID   primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	ReceiverName string             `bson:"receiverName" json:"receiverName"`
	Message      string             `bson:"message" json:"message"`
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Conversation is the per-counterpart summary shown in a user's inbox:
// the most recent message exchanged with that user and how many of their
// messages remain unread.
type Conversation struct {
	OtherUserID     primitive.ObjectID `json:"_id"`
	ProductID       primitive.ObjectID `json:"productId"`
	OtherUserName   string             `json:"otherUserName"`
	LastMessage     string             `json:"lastMessage"`
	LastMessageTime time.Time          `json:"lastMessageTime"`
	UnreadCount     int                `json:"unreadCount"`
}
