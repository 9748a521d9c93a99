package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateProductRequest struct {
	Name            string              `json:"name" binding:"required"`
	Slug            string              `json:"slug"`
	Description     string              `json:"description"`
	LongDescription string              `json:"longDescription"`
	Price           float64             `json:"price" binding:"required,gt=0"`
	OriginalPrice   *float64            `json:"originalPrice"`
	Image           string              `json:"image"`
	Images          []string            `json:"images"`
	Category        Category            `json:"category" binding:"required"`
	Brand           string              `json:"brand"`
	Featured        bool                `json:"featured"`
	InStock         *bool               `json:"inStock"`
	StockQuantity   int                 `json:"stockQuantity" binding:"gte=0"`
	Condition       Condition           `json:"condition"`
	Seller          *primitive.ObjectID `json:"seller"`
	SellerName      string              `json:"sellerName"`
	SellerContact   string              `json:"sellerContact"`
	Specifications  map[string]string   `json:"specifications"`
	Tags            []string            `json:"tags"`
}

// UpdateProductRequest carries optional fields; nil means "leave as is".
type UpdateProductRequest struct {
	Name            *string            `json:"name"`
	Description     *string            `json:"description"`
	LongDescription *string            `json:"longDescription"`
	Price           *float64           `json:"price"`
	OriginalPrice   *float64           `json:"originalPrice"`
	Image           *string            `json:"image"`
	Images          []string           `json:"images"`
	Category        *Category          `json:"category"`
	Brand           *string            `json:"brand"`
	Featured        *bool              `json:"featured"`
	InStock         *bool              `json:"inStock"`
	StockQuantity   *int               `json:"stockQuantity"`
	Condition       *Condition         `json:"condition"`
	SellerContact   *string            `json:"sellerContact"`
	Specifications  *map[string]string `json:"specifications"`
	Tags            []string           `json:"tags"`
}

type AddReviewRequest struct {
	UserName string `json:"userName" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SendMessageRequest struct {
	ProductID    primitive.ObjectID `json:"productId" binding:"required"`
	SenderID     primitive.ObjectID `json:"senderId" binding:"required"`
	SenderName   string             `json:"senderName" binding:"required"`
	ReceiverID   primitive.ObjectID `json:"receiverId" binding:"required"`
	ReceiverName string             `json:"receiverName" binding:"required"`
	Message      string             `json:"message" binding:"required"`
}

type CreateDemoRequest struct {
	ProductID      primitive.ObjectID `json:"productId" binding:"required"`
	BuyerID        primitive.ObjectID `json:"buyerId" binding:"required"`
	BuyerName      string             `json:"buyerName" binding:"required"`
	SellerID       primitive.ObjectID `json:"sellerId" binding:"required"`
	AdvancePayment float64            `json:"advancePayment" binding:"gte=0"`
	Message        string             `json:"message"`
}

type UpdateDemoStatusRequest struct {
	Status DemoStatus `json:"status" binding:"required"`
}

// CartLine is one (product, quantity, unit price) tuple submitted at
// checkout.
type CartLine struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required,min=1"`
	Price     float64            `json:"price" binding:"required,gte=0"`
}

type CheckoutRequest struct {
	BuyerID         primitive.ObjectID `json:"buyerId" binding:"required"`
	BuyerName       string             `json:"buyerName" binding:"required"`
	CartItems       []CartLine         `json:"cartItems" binding:"required,dive"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod" binding:"required"`
	TotalAmount     float64            `json:"totalAmount"`
}

type CreatePurchaseRequest struct {
	ProductID primitive.ObjectID  `json:"productId" binding:"required"`
	BuyerID   primitive.ObjectID  `json:"buyerId" binding:"required"`
	BuyerName string              `json:"buyerName" binding:"required"`
	SellerID  *primitive.ObjectID `json:"sellerId"`
	Amount    float64             `json:"amount" binding:"required,gte=0"`
	Quantity  int                 `json:"quantity"`
}
