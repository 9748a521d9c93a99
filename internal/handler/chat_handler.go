package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	message, err := h.chatService.Send(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to send message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	productID, userID, otherUserID, ok := h.conversationParams(c)
	if !ok {
		return
	}

	messages, err := h.chatService.Conversation(c.Request.Context(), productID, userID, otherUserID)
	if err != nil {
		h.logger.Error("Failed to fetch conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch messages",
		})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId", "Invalid user ID format")
	if !ok {
		return
	}

	conversations, err := h.chatService.Conversations(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list conversations",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch conversations",
		})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	productID, userID, otherUserID, ok := h.conversationParams(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), productID, userID, otherUserID); err != nil {
		h.logger.Error("Failed to mark messages read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark messages as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages marked as read",
	})
}

func (h *ChatHandler) conversationParams(c *gin.Context) (productID, userID, otherUserID primitive.ObjectID, ok bool) {
	productID, ok = objectIDParam(c, "productId", "Invalid product ID format")
	if !ok {
		return
	}
	userID, ok = objectIDParam(c, "userId", "Invalid user ID format")
	if !ok {
		return
	}
	otherUserID, ok = objectIDParam(c, "otherUserId", "Invalid user ID format")
	return
}
