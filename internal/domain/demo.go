package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DemoStatus tracks a demo request through the seller approval workflow.
type DemoStatus string

const (
	DemoStatusPending   DemoStatus = "pending"
	DemoStatusApproved  DemoStatus = "approved"
	DemoStatusRejected  DemoStatus = "rejected"
	DemoStatusCompleted DemoStatus = "completed"
)

func (s DemoStatus) Valid() bool {
	switch s {
	case DemoStatusPending, DemoStatusApproved, DemoStatusRejected, DemoStatusCompleted:
		return true
	}
	return false
}

// DemoRequest is a buyer's request to schedule a product demonstration,
// gated by an advance payment and seller approval.
type DemoRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID      primitive.ObjectID `bson:"productId" json:"productId"`
	BuyerID        primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	BuyerName      string             `bson:"buyerName" json:"buyerName"`
	SellerID       primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	AdvancePayment float64            `bson:"advancePayment" json:"advancePayment"`
	Status         DemoStatus         `bson:"status" json:"status"`
	Message        string             `bson:"message" json:"message"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// DemoRequestView joins the request with a product summary for seller
// dashboards.
type DemoRequestView struct {
	DemoRequest
	Product *ProductSummary `json:"product,omitempty"`
}
