package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/events"
)

// Store interfaces are defined on the consumer side; the Mongo
// repositories satisfy them and tests substitute in-memory fakes.

type ProductStore interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, skip int) ([]domain.Product, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Product, error)
	AppendReview(ctx context.Context, id primitive.ObjectID, review domain.Review) (*domain.Product, error)
	ReserveStock(ctx context.Context, id primitive.ObjectID, quantity int) (*domain.Product, error)
	ReleaseStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	ReplaceAll(ctx context.Context, products []domain.Product) ([]domain.Product, error)
}

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

type ChatStore interface {
	Insert(ctx context.Context, message *domain.ChatMessage) error
	ListConversation(ctx context.Context, productID, userID, otherUserID primitive.ObjectID) ([]domain.ChatMessage, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error)
	MarkRead(ctx context.Context, productID, userID, otherUserID primitive.ObjectID) error
}

type DemoRequestStore interface {
	Create(ctx context.Context, request *domain.DemoRequest) error
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.DemoRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.DemoStatus) (*domain.DemoRequest, error)
}

type PurchaseStore interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]domain.Purchase, error)
	ListCompletedByProduct(ctx context.Context, productID primitive.ObjectID) ([]domain.Purchase, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Purchase, error)
	ListCompletedBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Purchase, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]domain.Order, error)
	FindByPurchase(ctx context.Context, purchaseID primitive.ObjectID) (*domain.Order, error)
}

// EventPublisher pushes domain events to the message broker. Publishing
// is best effort; checkout outcomes never depend on it.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event events.OrderPlacedEvent) error
	PublishStockDepleted(ctx context.Context, event events.StockDepletedEvent) error
}
