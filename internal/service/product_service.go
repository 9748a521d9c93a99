package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/cache"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

const featuredLimit = 6

// ProductListing is the paginated catalog page returned by List.
type ProductListing struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Skip     int              `json:"skip"`
}

type ProductService struct {
	products ProductStore
	cache    *cache.ProductCache
	logger   *zap.Logger
}

func NewProductService(products ProductStore, productCache *cache.ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		cache:    productCache,
		logger:   logger,
	}
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, skip int) (*ProductListing, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	products, total, err := s.products.List(ctx, filter, sort, limit, skip)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	return &ProductListing{Products: products, Total: total, Limit: limit, Skip: skip}, nil
}

func (s *ProductService) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListFeatured(ctx, featuredLimit)
}

func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if product := s.cache.GetByID(ctx, id.Hex()); product != nil {
		return product, nil
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if product := s.cache.GetBySlug(ctx, slug); product != nil {
		return product, nil
	}

	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *ProductService) SellerProducts(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Product, error) {
	return s.products.ListBySeller(ctx, sellerID)
}

func (s *ProductService) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if !req.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Name)
	}

	condition := req.Condition
	if condition == "" {
		condition = domain.ConditionNew
	}

	images := req.Images
	if len(images) == 0 && req.Image != "" {
		images = []string{req.Image}
	}

	specifications := req.Specifications
	if specifications == nil {
		specifications = map[string]string{}
	}

	inStock := req.StockQuantity > 0
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &domain.Product{
		Name:            req.Name,
		Slug:            slug,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		Image:           req.Image,
		Images:          images,
		Category:        req.Category,
		Brand:           req.Brand,
		Featured:        req.Featured,
		InStock:         inStock,
		StockQuantity:   req.StockQuantity,
		Condition:       condition,
		Seller:          req.Seller,
		SellerName:      req.SellerName,
		SellerContact:   req.SellerContact,
		IsUserProduct:   req.Seller != nil || req.SellerName != "",
		Reviews:         []domain.Review{},
		Specifications:  specifications,
		Tags:            req.Tags,
		CreatedAt:       time.Now(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrSlugTaken
		}
		s.logger.Error("Failed to create product",
			zap.String("slug", product.Slug),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("slug", product.Slug))
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Invalidate under the pre-update slug before anything changes.
	s.cache.Invalidate(ctx, product)

	if req.Name != nil && *req.Name != product.Name {
		product.Name = *req.Name
		product.Slug = GenerateSlug(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.LongDescription != nil {
		product.LongDescription = *req.LongDescription
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.SellerContact != nil {
		product.SellerContact = *req.SellerContact
	}
	if req.Specifications != nil {
		product.Specifications = *req.Specifications
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
		product.InStock = *req.StockQuantity > 0
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrSlugTaken
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id.Hex()))
	return product, nil
}

func (s *ProductService) AddReview(ctx context.Context, id primitive.ObjectID, req domain.AddReviewRequest) (*domain.Product, error) {
	review := domain.Review{
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	product, err := s.products.AppendReview(ctx, id, review)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, product)

	s.logger.Info("Review added",
		zap.String("product_id", id.Hex()),
		zap.Int("rating", req.Rating),
		zap.Float64("new_average", product.Rating))
	return product, nil
}

// Seed wipes the catalog and reloads the fixture products. Destructive.
func (s *ProductService) Seed(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ReplaceAll(ctx, seedProducts())
	if err != nil {
		s.logger.Error("Failed to seed products", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Catalog seeded", zap.Int("count", len(products)))
	return products, nil
}
