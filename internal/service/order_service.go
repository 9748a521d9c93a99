package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

// SellerOrdersView splits a seller's sales into purchases grouped under
// their parent orders (filtered to that seller's lines) and purchases
// created outside any order.
type SellerOrdersView struct {
	Orders              []domain.OrderView    `json:"orders"`
	StandalonePurchases []domain.PurchaseView `json:"standalonePurchases"`
}

type OrderService struct {
	orders    OrderStore
	purchases PurchaseStore
	products  ProductStore
	logger    *zap.Logger
}

func NewOrderService(orders OrderStore, purchases PurchaseStore, products ProductStore, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		purchases: purchases,
		products:  products,
		logger:    logger,
	}
}

// BuyerOrders returns the buyer's orders, most recent first, each with
// its purchases and their product summaries expanded.
func (s *OrderService) BuyerOrders(ctx context.Context, buyerID primitive.ObjectID) ([]domain.OrderView, error) {
	orders, err := s.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.OrderView, 0, len(orders))
	for i := range orders {
		view, err := s.expandOrder(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.OrderView, error) {
	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return s.expandOrder(ctx, order)
}

// SellerOrders walks the seller's purchases and groups each under its
// parent order when one exists.
func (s *OrderService) SellerOrders(ctx context.Context, sellerID primitive.ObjectID) (*SellerOrdersView, error) {
	purchases, err := s.purchases.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.productSummaries(ctx, purchaseProductIDs(purchases))
	if err != nil {
		return nil, err
	}

	view := &SellerOrdersView{
		Orders:              []domain.OrderView{},
		StandalonePurchases: []domain.PurchaseView{},
	}
	seenOrders := map[primitive.ObjectID]bool{}

	for i := range purchases {
		order, err := s.orders.FindByPurchase(ctx, purchases[i].ID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			view.StandalonePurchases = append(view.StandalonePurchases,
				expandPurchases(purchases[i:i+1], summaries)...)
			continue
		}
		if seenOrders[order.ID] {
			continue
		}
		seenOrders[order.ID] = true

		orderView, err := s.expandOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		// Only this seller's lines belong in their view of the order.
		filtered := orderView.PurchaseViews[:0]
		for _, pv := range orderView.PurchaseViews {
			if pv.SellerID != nil && *pv.SellerID == sellerID {
				filtered = append(filtered, pv)
			}
		}
		orderView.PurchaseViews = filtered
		if len(filtered) > 0 {
			view.Orders = append(view.Orders, *orderView)
		}
	}

	return view, nil
}

func (s *OrderService) expandOrder(ctx context.Context, order *domain.Order) (*domain.OrderView, error) {
	purchases, err := s.purchases.GetMany(ctx, order.Purchases)
	if err != nil {
		return nil, err
	}

	// Preserve the order's own line ordering.
	byID := make(map[primitive.ObjectID]domain.Purchase, len(purchases))
	for i := range purchases {
		byID[purchases[i].ID] = purchases[i]
	}
	ordered := make([]domain.Purchase, 0, len(order.Purchases))
	for _, id := range order.Purchases {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	summaries, err := s.productSummaries(ctx, purchaseProductIDs(ordered))
	if err != nil {
		return nil, err
	}

	return &domain.OrderView{
		Order:         *order,
		PurchaseViews: expandPurchases(ordered, summaries),
	}, nil
}

func (s *OrderService) productSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.ProductSummary, error) {
	summaries := map[primitive.ObjectID]domain.ProductSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}
	products, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		summaries[products[i].ID] = products[i].Summary()
	}
	return summaries, nil
}

func purchaseProductIDs(purchases []domain.Purchase) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(purchases))
	seen := map[primitive.ObjectID]bool{}
	for i := range purchases {
		if !seen[purchases[i].ProductID] {
			seen[purchases[i].ProductID] = true
			ids = append(ids, purchases[i].ProductID)
		}
	}
	return ids
}

func expandPurchases(purchases []domain.Purchase, summaries map[primitive.ObjectID]domain.ProductSummary) []domain.PurchaseView {
	views := make([]domain.PurchaseView, 0, len(purchases))
	for i := range purchases {
		view := domain.PurchaseView{Purchase: purchases[i]}
		if summary, ok := summaries[purchases[i].ProductID]; ok {
			view.Product = &summary
		}
		views = append(views, view)
	}
	return views
}
