package domain

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// InitialPaymentStatus is the payment status a checkout stamps on its
// purchases and order: cash on delivery stays pending, online payment is
// modeled as immediately paid (no gateway integration).
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	if m == PaymentMethodCOD {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Purchase is one persisted line item of a completed sale. It is immutable
// after creation except for its status fields.
type Purchase struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	ProductID       primitive.ObjectID  `bson:"productId" json:"productId"`
	BuyerID         primitive.ObjectID  `bson:"buyerId" json:"buyerId"`
	BuyerName       string              `bson:"buyerName" json:"buyerName"`
	SellerID        *primitive.ObjectID `bson:"sellerId,omitempty" json:"sellerId,omitempty"`
	Amount          float64             `bson:"amount" json:"amount"`
	Quantity        int                 `bson:"quantity" json:"quantity"`
	Status          PurchaseStatus      `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus       `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod   PaymentMethod       `bson:"paymentMethod" json:"paymentMethod"`
	ShippingAddress string              `bson:"shippingAddress" json:"shippingAddress"`
	PurchaseDate    time.Time           `bson:"purchaseDate" json:"purchaseDate"`
}

// Order groups the purchases of a single checkout under a generated,
// human-readable identifier.
type Order struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	OrderID         string               `bson:"orderId" json:"orderId"`
	BuyerID         primitive.ObjectID   `bson:"buyerId" json:"buyerId"`
	BuyerName       string               `bson:"buyerName" json:"buyerName"`
	Purchases       []primitive.ObjectID `bson:"purchases" json:"purchases"`
	TotalAmount     float64              `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus   PaymentStatus        `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod   PaymentMethod        `bson:"paymentMethod" json:"paymentMethod"`
	ShippingAddress string               `bson:"shippingAddress" json:"shippingAddress"`
	OrderStatus     OrderStatus          `bson:"orderStatus" json:"orderStatus"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
}

// PurchaseView expands a purchase with the summary of its product.
type PurchaseView struct {
	Purchase
	Product *ProductSummary `json:"product,omitempty"`
}

// OrderView is the denormalized order shape returned to buyers: the order
// with its purchases and their product summaries expanded.
type OrderView struct {
	Order
	PurchaseViews []PurchaseView `json:"purchaseDetails"`
}

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID builds a human-readable order identifier from the checkout
// timestamp and a random base36 suffix. Uniqueness is probabilistic; the
// orders collection carries a unique index as the backstop.
func NewOrderID(now time.Time) string {
	var b strings.Builder
	b.WriteString("ORD-")
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	for i := 0; i < 9; i++ {
		b.WriteByte(orderIDAlphabet[rand.Intn(len(orderIDAlphabet))])
	}
	return b.String()
}
