package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProductStore serves the handler tests: a fixed set of products,
// conditional stock decrements, and a record of the last List call.
type stubProductStore struct {
	products map[primitive.ObjectID]*domain.Product

	lastFilter domain.ProductFilter
	lastSort   domain.ProductSort
	lastLimit  int
	lastSkip   int
}

func newStubProductStore(products ...*domain.Product) *stubProductStore {
	s := &stubProductStore{products: map[primitive.ObjectID]*domain.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *stubProductStore) Create(_ context.Context, product *domain.Product) error {
	product.ID = primitive.NewObjectID()
	s.products[product.ID] = product
	return nil
}

func (s *stubProductStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrProductNotFound
}

func (s *stubProductStore) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (s *stubProductStore) GetMany(_ context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) Update(_ context.Context, product *domain.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductStore) List(_ context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, skip int) ([]domain.Product, int64, error) {
	s.lastFilter = filter
	s.lastSort = sort
	s.lastLimit = limit
	s.lastSkip = skip

	var out []domain.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubProductStore) ListFeatured(_ context.Context, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Seller != nil && *p.Seller == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) AppendReview(_ context.Context, id primitive.ObjectID, review domain.Review) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	p.Reviews = append(p.Reviews, review)
	p.ReviewCount = len(p.Reviews)
	p.Rating = p.AverageRating()
	cp := *p
	return &cp, nil
}

func (s *stubProductStore) ReserveStock(_ context.Context, id primitive.ObjectID, quantity int) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if !p.InStock || p.StockQuantity < quantity {
		return nil, repository.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.InStock = p.StockQuantity > 0
	cp := *p
	return &cp, nil
}

func (s *stubProductStore) ReleaseStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.StockQuantity += quantity
	p.InStock = p.StockQuantity > 0
	return nil
}

func (s *stubProductStore) ReplaceAll(_ context.Context, products []domain.Product) ([]domain.Product, error) {
	s.products = map[primitive.ObjectID]*domain.Product{}
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		p := products[i]
		s.products[p.ID] = &p
	}
	return products, nil
}

type stubPurchaseStore struct {
	purchases map[primitive.ObjectID]domain.Purchase
}

func newStubPurchaseStore() *stubPurchaseStore {
	return &stubPurchaseStore{purchases: map[primitive.ObjectID]domain.Purchase{}}
}

func (s *stubPurchaseStore) Create(_ context.Context, purchase *domain.Purchase) error {
	purchase.ID = primitive.NewObjectID()
	s.purchases[purchase.ID] = *purchase
	return nil
}

func (s *stubPurchaseStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.purchases, id)
	return nil
}

func (s *stubPurchaseStore) GetMany(_ context.Context, ids []primitive.ObjectID) ([]domain.Purchase, error) {
	var out []domain.Purchase
	for _, id := range ids {
		if p, ok := s.purchases[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPurchaseStore) ListCompletedByProduct(_ context.Context, _ primitive.ObjectID) ([]domain.Purchase, error) {
	return nil, nil
}

func (s *stubPurchaseStore) ListBySeller(_ context.Context, _ primitive.ObjectID) ([]domain.Purchase, error) {
	return nil, nil
}

func (s *stubPurchaseStore) ListCompletedBySeller(_ context.Context, _ primitive.ObjectID) ([]domain.Purchase, error) {
	return nil, nil
}

type stubOrderStore struct {
	orders []domain.Order
}

func (s *stubOrderStore) Create(_ context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *stubOrderStore) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (s *stubOrderStore) ListByBuyer(_ context.Context, _ primitive.ObjectID) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderStore) FindByPurchase(_ context.Context, _ primitive.ObjectID) (*domain.Order, error) {
	return nil, nil
}

type stubUserStore struct {
	users map[string]domain.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[string]domain.User{}}
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrDuplicateUser
	}
	user.ID = primitive.NewObjectID()
	s.users[user.Email] = *user
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := s.users[email]; ok {
		return &u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) GetByID(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

func sellerProduct(name string, price float64, stock int) *domain.Product {
	seller := primitive.NewObjectID()
	return &domain.Product{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Slug:          name,
		Price:         price,
		StockQuantity: stock,
		InStock:       stock > 0,
		Category:      domain.CategoryElectronics,
		Seller:        &seller,
	}
}

func productRouter(store *stubProductStore) *gin.Engine {
	svc := service.NewProductService(store, nil, zap.NewNop())
	h := NewProductHandler(svc, zap.NewNop())

	router := gin.New()
	router.GET("/api/products", h.ListProducts)
	router.GET("/api/products/featured", h.FeaturedProducts)
	router.GET("/api/products/slug/:slug", h.GetProductBySlug)
	router.GET("/api/products/:id", h.GetProduct)
	router.POST("/api/products", h.CreateProduct)
	router.POST("/api/products/:id/reviews", h.AddReview)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListProductsParsesQuery(t *testing.T) {
	store := newStubProductStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodGet,
		"/api/products?category=Electronics&minPrice=10&maxPrice=99.5&inStock=true&hasDiscount=true&sort=price-low&limit=5&skip=10&search=camera", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Electronics", store.lastFilter.Category)
	require.NotNil(t, store.lastFilter.MinPrice)
	assert.Equal(t, 10.0, *store.lastFilter.MinPrice)
	require.NotNil(t, store.lastFilter.MaxPrice)
	assert.Equal(t, 99.5, *store.lastFilter.MaxPrice)
	require.NotNil(t, store.lastFilter.InStock)
	assert.True(t, *store.lastFilter.InStock)
	assert.True(t, store.lastFilter.HasDiscount)
	assert.Equal(t, "camera", store.lastFilter.Search)
	assert.Equal(t, domain.SortPriceLow, store.lastSort)
	assert.Equal(t, 5, store.lastLimit)
	assert.Equal(t, 10, store.lastSkip)
}

func TestListProductsDefaults(t *testing.T) {
	store := newStubProductStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, domain.SortNewest, store.lastSort)
	assert.Equal(t, 50, store.lastLimit)
	assert.Equal(t, 0, store.lastSkip)
	assert.Nil(t, store.lastFilter.InStock)

	var body struct {
		Total int64 `json:"total"`
		Limit int   `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 50, body.Limit)
}

func TestGetProductInvalidID(t *testing.T) {
	router := productRouter(newStubProductStore())

	w := doJSON(t, router, http.MethodGet, "/api/products/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid product ID format")
}

func TestGetProductNotFound(t *testing.T) {
	router := productRouter(newStubProductStore())

	w := doJSON(t, router, http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	router := productRouter(newStubProductStore())

	// Missing required fields.
	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{"name": "No Price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown category.
	w = doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name": "Thing", "price": 10, "category": "Gadgets",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name": "Thing", "price": 10, "category": "Electronics",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddReviewValidatesRating(t *testing.T) {
	store := newStubProductStore(sellerProduct("Gadget", 100, 5))
	router := productRouter(store)

	var productID string
	for id := range store.products {
		productID = id.Hex()
	}

	w := doJSON(t, router, http.MethodPost, "/api/products/"+productID+"/reviews", gin.H{
		"userName": "Asha", "rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/products/"+productID+"/reviews", gin.H{
		"userName": "Asha", "rating": 4, "comment": "solid",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":4`)
}

func authRouter() *gin.Engine {
	svc := service.NewAuthService(newStubUserStore(), zap.NewNop())
	h := NewAuthHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	return router
}

func TestRegisterLoginFlow(t *testing.T) {
	router := authRouter()

	register := gin.H{"name": "Asha", "email": "asha@example.com", "password": "hunter2"}
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", register)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	assert.NotContains(t, w.Body.String(), "hunter2")

	w = doJSON(t, router, http.MethodPost, "/api/auth/register", register)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "asha@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login successful")

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "asha@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func checkoutRouter(products ...*domain.Product) (*gin.Engine, *stubProductStore) {
	store := newStubProductStore(products...)
	svc := service.NewCheckoutService(store, newStubPurchaseStore(), &stubOrderStore{}, nil, nil, zap.NewNop())
	h := NewCheckoutHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/api/checkout", h.Checkout)
	return router, store
}

func TestCheckoutEndpointPlacesOrder(t *testing.T) {
	product := sellerProduct("Gadget", 100, 5)
	router, store := checkoutRouter(product)

	w := doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"buyerId":   primitive.NewObjectID().Hex(),
		"buyerName": "Asha",
		"cartItems": []gin.H{
			{"productId": product.ID.Hex(), "quantity": 2, "price": 100},
		},
		"shippingAddress": "12 Harbor Lane",
		"paymentMethod":   "cod",
		"totalAmount":     200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Order   struct {
			OrderID     string  `json:"orderId"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Order placed successfully", body.Message)
	assert.Equal(t, 200.0, body.Order.TotalAmount)
	assert.NotEmpty(t, body.Order.OrderID)

	updated, err := store.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.StockQuantity)
}

func TestCheckoutEndpointInsufficientStock(t *testing.T) {
	product := sellerProduct("Rare Gadget", 100, 1)
	router, store := checkoutRouter(product)

	w := doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"buyerId":   primitive.NewObjectID().Hex(),
		"buyerName": "Asha",
		"cartItems": []gin.H{
			{"productId": product.ID.Hex(), "quantity": 3, "price": 100},
		},
		"shippingAddress": "12 Harbor Lane",
		"paymentMethod":   "cod",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock for Rare Gadget. Available: 1, Requested: 3")

	unchanged, err := store.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unchanged.StockQuantity)
}

func TestCheckoutEndpointEmptyCart(t *testing.T) {
	router, _ := checkoutRouter()

	w := doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"buyerId":         primitive.NewObjectID().Hex(),
		"buyerName":       "Asha",
		"cartItems":       []gin.H{},
		"shippingAddress": "12 Harbor Lane",
		"paymentMethod":   "cod",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutEndpointMalformedBody(t *testing.T) {
	router, _ := checkoutRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
