package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

// ProductStat aggregates a seller's completed sales of one product.
type ProductStat struct {
	ProductName  string  `json:"productName"`
	TotalSales   int     `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
	Quantity     int     `json:"quantity"`
}

// MonthlySales buckets completed sales by calendar month (YYYY-MM).
type MonthlySales struct {
	Month   string  `json:"month"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type SellerAnalytics struct {
	TotalPurchases int            `json:"totalPurchases"`
	TotalRevenue   float64        `json:"totalRevenue"`
	ProductStats   []ProductStat  `json:"productStats"`
	MonthlyData    []MonthlySales `json:"monthlyData"`
}

// PurchaseService covers the single-purchase path that predates checkout
// and the seller revenue aggregations built on purchase records.
type PurchaseService struct {
	purchases PurchaseStore
	products  ProductStore
	logger    *zap.Logger
}

func NewPurchaseService(purchases PurchaseStore, products ProductStore, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{purchases: purchases, products: products, logger: logger}
}

// Create records a standalone purchase. The seller is copied from the
// product when the caller does not name one.
func (s *PurchaseService) Create(ctx context.Context, req domain.CreatePurchaseRequest) (*domain.Purchase, error) {
	sellerID := req.SellerID
	if sellerID == nil {
		product, err := s.products.GetByID(ctx, req.ProductID)
		if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		if product != nil {
			sellerID = product.Seller
		}
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	purchase := &domain.Purchase{
		ProductID:     req.ProductID,
		BuyerID:       req.BuyerID,
		BuyerName:     req.BuyerName,
		SellerID:      sellerID,
		Amount:        req.Amount,
		Quantity:      quantity,
		Status:        domain.PurchaseStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: domain.PaymentMethodCOD,
		PurchaseDate:  time.Now(),
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		s.logger.Error("Failed to create purchase", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Purchase created",
		zap.String("purchase_id", purchase.ID.Hex()),
		zap.String("product_id", req.ProductID.Hex()))
	return purchase, nil
}

func (s *PurchaseService) ProductPurchases(ctx context.Context, productID primitive.ObjectID) ([]domain.Purchase, error) {
	purchases, err := s.purchases.ListCompletedByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}
	return purchases, nil
}

func (s *PurchaseService) SellerAnalytics(ctx context.Context, sellerID primitive.ObjectID) (*SellerAnalytics, error) {
	purchases, err := s.purchases.ListCompletedBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	if ids := purchaseProductIDs(purchases); len(ids) > 0 {
		products, err := s.products.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range products {
			names[products[i].ID] = products[i].Name
		}
	}

	return AggregateSellerAnalytics(purchases, names), nil
}

// AggregateSellerAnalytics folds completed purchases into per-product
// and per-month revenue buckets. Months are returned in ascending order.
func AggregateSellerAnalytics(purchases []domain.Purchase, productNames map[primitive.ObjectID]string) *SellerAnalytics {
	analytics := &SellerAnalytics{
		ProductStats: []ProductStat{},
		MonthlyData:  []MonthlySales{},
	}

	statIndex := map[primitive.ObjectID]int{}
	monthIndex := map[string]int{}

	for i := range purchases {
		p := &purchases[i]
		analytics.TotalPurchases++
		analytics.TotalRevenue += p.Amount

		si, ok := statIndex[p.ProductID]
		if !ok {
			statIndex[p.ProductID] = len(analytics.ProductStats)
			analytics.ProductStats = append(analytics.ProductStats, ProductStat{
				ProductName: productNames[p.ProductID],
			})
			si = statIndex[p.ProductID]
		}
		analytics.ProductStats[si].TotalSales++
		analytics.ProductStats[si].TotalRevenue += p.Amount
		analytics.ProductStats[si].Quantity += p.Quantity

		month := p.PurchaseDate.UTC().Format("2006-01")
		mi, ok := monthIndex[month]
		if !ok {
			monthIndex[month] = len(analytics.MonthlyData)
			analytics.MonthlyData = append(analytics.MonthlyData, MonthlySales{Month: month})
			mi = monthIndex[month]
		}
		analytics.MonthlyData[mi].Sales++
		analytics.MonthlyData[mi].Revenue += p.Amount
	}

	sort.Slice(analytics.MonthlyData, func(i, j int) bool {
		return analytics.MonthlyData[i].Month < analytics.MonthlyData[j].Month
	})

	return analytics
}
