package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection(productsCollection)}
}

// buildProductQuery translates the filter specification into a single
// conjunctive query document.
func buildProductQuery(f domain.ProductFilter) bson.M {
	query := bson.M{}

	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Brand != "" {
		query["brand"] = f.Brand
	}
	if f.Condition != "" {
		query["condition"] = f.Condition
	}
	if f.InStock != nil {
		query["inStock"] = *f.InStock
	}
	if f.IsUserProduct != nil {
		query["isUserProduct"] = *f.IsUserProduct
	}
	if f.MinRating != nil {
		query["rating"] = bson.M{"$gte": *f.MinRating}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}

	if f.HasDiscount {
		query["originalPrice"] = bson.M{"$exists": true, "$ne": nil}
		query["$expr"] = bson.M{"$gt": bson.A{"$originalPrice", "$price"}}
	}

	if f.Tag != "" {
		query["tags"] = bson.M{"$in": bson.A{f.Tag}}
	}

	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		re := primitive.Regex{Pattern: pattern, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"longDescription": re},
			bson.M{"brand": re},
			bson.M{"tags": bson.M{"$in": bson.A{re}}},
		}
	}

	return query
}

// productSortSpec maps a sort key onto a native ordering. The discount
// sort has no native ordering and is handled separately by List.
func productSortSpec(sort domain.ProductSort) bson.D {
	switch sort {
	case domain.SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}}
	case domain.SortPriceLow:
		return bson.D{{Key: "price", Value: 1}}
	case domain.SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}}
	case domain.SortRating:
		return bson.D{{Key: "rating", Value: -1}}
	case domain.SortRatingLow:
		return bson.D{{Key: "rating", Value: 1}}
	case domain.SortName:
		return bson.D{{Key: "name", Value: 1}}
	case domain.SortNameDesc:
		return bson.D{{Key: "name", Value: -1}}
	case domain.SortReviews:
		return bson.D{{Key: "reviewCount", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// List fetches one page of the filtered catalog plus the total match
// count. Discount ordering is computed from a derived value, so that sort
// retrieves the whole filtered set and pages it in memory.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, skip int) ([]domain.Product, int64, error) {
	query := buildProductQuery(filter)

	if sort == domain.SortDiscount {
		cursor, err := r.collection.Find(ctx, query)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list products: %w", err)
		}
		var all []domain.Product
		if err := cursor.All(ctx, &all); err != nil {
			return nil, 0, fmt.Errorf("failed to decode products: %w", err)
		}
		domain.SortByDiscount(all)
		return paginate(all, limit, skip), int64(len(all)), nil
	}

	opts := options.Find().
		SetSort(productSortSpec(sort)).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, total, nil
}

// paginate slices one page out of an already ordered result set.
func paginate(products []domain.Product, limit, skip int) []domain.Product {
	if skip >= len(products) {
		return []domain.Product{}
	}
	end := skip + limit
	if end > len(products) {
		end = len(products)
	}
	return products[skip:end]
}

func (r *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode featured products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"seller": sellerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}
	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode seller products: %w", err)
	}
	return products, nil
}

// AppendReview pushes a review and recomputes the stored average rating.
func (r *ProductRepository) AppendReview(ctx context.Context, id primitive.ObjectID, review domain.Review) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"reviews": review}},
		opts,
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to append review: %w", err)
	}

	product.Rating = product.AverageRating()
	_, err = r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"rating":      product.Rating,
		"reviewCount": len(product.Reviews),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}

	return &product, nil
}

// ReserveStock atomically decrements a product's stock, refusing the
// update unless enough units remain. The same update keeps the inStock
// flag consistent with the new quantity, so the invariant
// inStock == (stockQuantity > 0) holds at every point in time.
func (r *ProductRepository) ReserveStock(ctx context.Context, id primitive.ObjectID, quantity int) (*domain.Product, error) {
	filter := bson.M{
		"_id":           id,
		"inStock":       true,
		"stockQuantity": bson.M{"$gte": quantity},
	}
	update := bson.A{
		bson.M{"$set": bson.M{"stockQuantity": bson.M{"$subtract": bson.A{"$stockQuantity", quantity}}}},
		bson.M{"$set": bson.M{"inStock": bson.M{"$gt": bson.A{"$stockQuantity", 0}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	// The conditional update matched nothing: either the product is gone
	// or it has too little stock.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrInsufficientStock
}

// ReleaseStock is the compensating action for ReserveStock.
func (r *ProductRepository) ReleaseStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	update := bson.A{
		bson.M{"$set": bson.M{"stockQuantity": bson.M{"$add": bson.A{"$stockQuantity", quantity}}}},
		bson.M{"$set": bson.M{"inStock": bson.M{"$gt": bson.A{"$stockQuantity", 0}}}},
	}
	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ReplaceAll wipes the catalog and loads the given products. Destructive;
// only the seed endpoint uses it.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to clear products: %w", err)
	}

	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert seed products: %w", err)
	}
	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok {
			products[i].ID = oid
		}
	}
	return products, nil
}
