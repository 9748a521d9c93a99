package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

type DemoService struct {
	requests DemoRequestStore
	products ProductStore
	logger   *zap.Logger
}

func NewDemoService(requests DemoRequestStore, products ProductStore, logger *zap.Logger) *DemoService {
	return &DemoService{requests: requests, products: products, logger: logger}
}

func (s *DemoService) Create(ctx context.Context, req domain.CreateDemoRequest) (*domain.DemoRequest, error) {
	request := &domain.DemoRequest{
		ProductID:      req.ProductID,
		BuyerID:        req.BuyerID,
		BuyerName:      req.BuyerName,
		SellerID:       req.SellerID,
		AdvancePayment: req.AdvancePayment,
		Status:         domain.DemoStatusPending,
		Message:        req.Message,
		CreatedAt:      time.Now(),
	}

	if err := s.requests.Create(ctx, request); err != nil {
		s.logger.Error("Failed to create demo request", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Demo request created",
		zap.String("request_id", request.ID.Hex()),
		zap.String("seller_id", req.SellerID.Hex()))
	return request, nil
}

// SellerRequests lists a seller's demo requests with product summaries
// joined in for the dashboard.
func (s *DemoService) SellerRequests(ctx context.Context, sellerID primitive.ObjectID) ([]domain.DemoRequestView, error) {
	requests, err := s.requests.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, r := range requests {
		productIDs = append(productIDs, r.ProductID)
	}

	summaries := map[primitive.ObjectID]domain.ProductSummary{}
	if len(productIDs) > 0 {
		products, err := s.products.GetMany(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range products {
			summaries[products[i].ID] = products[i].Summary()
		}
	}

	views := make([]domain.DemoRequestView, 0, len(requests))
	for _, r := range requests {
		view := domain.DemoRequestView{DemoRequest: r}
		if summary, ok := summaries[r.ProductID]; ok {
			view.Product = &summary
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *DemoService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.DemoStatus) (*domain.DemoRequest, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	request, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrDemoRequestNotFound) {
			return nil, ErrDemoRequestNotFound
		}
		return nil, err
	}

	s.logger.Info("Demo request status updated",
		zap.String("request_id", id.Hex()),
		zap.String("status", string(status)))
	return request, nil
}
