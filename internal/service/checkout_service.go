package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/cache"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/events"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

// CheckoutService turns a validated cart into purchases and an order.
//
// Stock is taken through atomic conditional decrements, so two checkouts
// racing for the last unit cannot both succeed. Every mutation after a
// reservation has a compensating action: a failure while recording
// purchases or the order releases all reserved stock and deletes any
// purchases already written, leaving no visible effect.
type CheckoutService struct {
	products  ProductStore
	purchases PurchaseStore
	orders    OrderStore
	cache     *cache.ProductCache
	publisher EventPublisher
	logger    *zap.Logger
}

func NewCheckoutService(
	products ProductStore,
	purchases PurchaseStore,
	orders OrderStore,
	productCache *cache.ProductCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		products:  products,
		purchases: purchases,
		orders:    orders,
		cache:     productCache,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.OrderView, error) {
	if len(req.CartItems) == 0 {
		return nil, ErrEmptyCart
	}
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	fetched, err := s.fetchProducts(ctx, req.CartItems)
	if err != nil {
		return nil, err
	}

	// Fail fast before touching anything.
	for i, line := range req.CartItems {
		product := fetched[i]
		if !product.InStock || product.StockQuantity < line.Quantity {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.StockQuantity,
				Requested:   line.Quantity,
			}
		}
	}

	reserved, err := s.reserveStock(ctx, req.CartItems, fetched)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paymentStatus := req.PaymentMethod.InitialPaymentStatus()

	created := make([]domain.Purchase, 0, len(req.CartItems))
	for i, line := range req.CartItems {
		product := reserved[i]
		purchase := &domain.Purchase{
			ProductID:       product.ID,
			BuyerID:         req.BuyerID,
			BuyerName:       req.BuyerName,
			SellerID:        product.Seller,
			Amount:          line.Price * float64(line.Quantity),
			Quantity:        line.Quantity,
			Status:          domain.PurchaseStatusCompleted,
			PaymentStatus:   paymentStatus,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			PurchaseDate:    now,
		}
		if err := s.purchases.Create(ctx, purchase); err != nil {
			s.compensate(ctx, req.CartItems, created)
			return nil, fmt.Errorf("failed to record purchase: %w", err)
		}
		created = append(created, *purchase)
	}

	total := 0.0
	purchaseIDs := make([]primitive.ObjectID, len(created))
	for i := range created {
		total += created[i].Amount
		purchaseIDs[i] = created[i].ID
	}
	if req.TotalAmount != 0 && math.Abs(req.TotalAmount-total) > 1e-9 {
		s.logger.Warn("Claimed cart total disagrees with computed total",
			zap.Float64("claimed", req.TotalAmount),
			zap.Float64("computed", total))
	}

	order := &domain.Order{
		OrderID:         domain.NewOrderID(now),
		BuyerID:         req.BuyerID,
		BuyerName:       req.BuyerName,
		Purchases:       purchaseIDs,
		TotalAmount:     total,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		OrderStatus:     domain.OrderStatusConfirmed,
		CreatedAt:       now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.compensate(ctx, req.CartItems, created)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.OrderID),
		zap.String("buyer_id", req.BuyerID.Hex()),
		zap.Int("lines", len(created)),
		zap.Float64("total", total))

	s.publishEvents(ctx, order, created, reserved)

	summaries := make(map[primitive.ObjectID]domain.ProductSummary, len(reserved))
	for _, product := range reserved {
		summaries[product.ID] = product.Summary()
	}
	return &domain.OrderView{
		Order:         *order,
		PurchaseViews: expandPurchases(created, summaries),
	}, nil
}

// fetchProducts resolves every cart line's product concurrently, failing
// the whole checkout on the first missing product.
func (s *CheckoutService) fetchProducts(ctx context.Context, lines []domain.CartLine) ([]*domain.Product, error) {
	fetched := make([]*domain.Product, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			product, err := s.products.GetByID(gctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return fmt.Errorf("product %s: %w", line.ProductID.Hex(), ErrProductNotFound)
				}
				return err
			}
			fetched[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fetched, nil
}

// reserveStock takes the conditional decrement for every line, releasing
// any earlier reservations as soon as one line fails.
func (s *CheckoutService) reserveStock(ctx context.Context, lines []domain.CartLine, fetched []*domain.Product) ([]*domain.Product, error) {
	reserved := make([]*domain.Product, 0, len(lines))
	for i, line := range lines {
		updated, err := s.products.ReserveStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			s.releaseStock(ctx, lines[:i])
			if errors.Is(err, repository.ErrInsufficientStock) {
				// Another checkout got there first.
				return nil, &InsufficientStockError{
					ProductName: fetched[i].Name,
					Available:   fetched[i].StockQuantity,
					Requested:   line.Quantity,
				}
			}
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("product %s: %w", line.ProductID.Hex(), ErrProductNotFound)
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		s.cache.Invalidate(ctx, updated)
		reserved = append(reserved, updated)
	}
	return reserved, nil
}

func (s *CheckoutService) releaseStock(ctx context.Context, lines []domain.CartLine) {
	for _, line := range lines {
		if err := s.products.ReleaseStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.logger.Error("Stock restoration failed",
				zap.String("product_id", line.ProductID.Hex()),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}

// compensate undoes a partially committed checkout: every written
// purchase is deleted and every line's reservation released.
func (s *CheckoutService) compensate(ctx context.Context, lines []domain.CartLine, created []domain.Purchase) {
	for i := range created {
		if err := s.purchases.Delete(ctx, created[i].ID); err != nil {
			s.logger.Error("Purchase rollback failed",
				zap.String("purchase_id", created[i].ID.Hex()),
				zap.Error(err))
		}
	}
	s.releaseStock(ctx, lines)
}

func (s *CheckoutService) publishEvents(ctx context.Context, order *domain.Order, purchases []domain.Purchase, products []*domain.Product) {
	if s.publisher == nil {
		return
	}

	lines := make([]events.OrderLine, len(purchases))
	for i := range purchases {
		lines[i] = events.OrderLine{
			ProductID:   purchases[i].ProductID.Hex(),
			ProductName: products[i].Name,
			Quantity:    purchases[i].Quantity,
			Amount:      purchases[i].Amount,
		}
	}
	placed := events.OrderPlacedEvent{
		EventID:       uuid.New().String(),
		OrderID:       order.OrderID,
		BuyerID:       order.BuyerID.Hex(),
		TotalAmount:   order.TotalAmount,
		Lines:         lines,
		PaymentMethod: string(order.PaymentMethod),
		Timestamp:     order.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, placed); err != nil {
		s.logger.Warn("Failed to publish order event", zap.Error(err))
	}

	for _, product := range products {
		if product.StockQuantity > 0 {
			continue
		}
		depleted := events.StockDepletedEvent{
			EventID:   uuid.New().String(),
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			Timestamp: order.CreatedAt,
		}
		if err := s.publisher.PublishStockDepleted(ctx, depleted); err != nil {
			s.logger.Warn("Failed to publish stock event", zap.Error(err))
		}
	}
}
