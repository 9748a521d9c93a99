package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/events"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
)

// In-memory stores standing in for the Mongo repositories. The product
// fake reproduces the conditional stock decrement so concurrency paths
// behave the same as against the real collection.

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*domain.Product
}

func newFakeProductStore(products ...*domain.Product) *fakeProductStore {
	s := &fakeProductStore{products: map[primitive.ObjectID]*domain.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) clone(p *domain.Product) *domain.Product {
	cp := *p
	return &cp
}

func (s *fakeProductStore) Create(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == product.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	product.ID = primitive.NewObjectID()
	s.products[product.ID] = s.clone(product)
	return nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return s.clone(p), nil
}

func (s *fakeProductStore) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return s.clone(p), nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (s *fakeProductStore) GetMany(_ context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Update(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	s.products[product.ID] = s.clone(product)
	return nil
}

func (s *fakeProductStore) List(_ context.Context, _ domain.ProductFilter, _ domain.ProductSort, _, _ int) ([]domain.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) ListFeatured(_ context.Context, limit int) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Seller != nil && *p.Seller == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) AppendReview(_ context.Context, id primitive.ObjectID, review domain.Review) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	p.Reviews = append(p.Reviews, review)
	p.ReviewCount = len(p.Reviews)
	p.Rating = p.AverageRating()
	return s.clone(p), nil
}

func (s *fakeProductStore) ReserveStock(_ context.Context, id primitive.ObjectID, quantity int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if !p.InStock || p.StockQuantity < quantity {
		return nil, repository.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.InStock = p.StockQuantity > 0
	return s.clone(p), nil
}

func (s *fakeProductStore) ReleaseStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.StockQuantity += quantity
	p.InStock = p.StockQuantity > 0
	return nil
}

func (s *fakeProductStore) ReplaceAll(_ context.Context, products []domain.Product) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = map[primitive.ObjectID]*domain.Product{}
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		s.products[products[i].ID] = s.clone(&products[i])
	}
	return products, nil
}

type fakePurchaseStore struct {
	mu        sync.Mutex
	purchases map[primitive.ObjectID]domain.Purchase
	createErr error
	failAfter int // fail Create once this many purchases exist, 0 disables
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{purchases: map[primitive.ObjectID]domain.Purchase{}}
}

func (s *fakePurchaseStore) Create(_ context.Context, purchase *domain.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil && (s.failAfter == 0 || len(s.purchases) >= s.failAfter) {
		return s.createErr
	}
	purchase.ID = primitive.NewObjectID()
	s.purchases[purchase.ID] = *purchase
	return nil
}

func (s *fakePurchaseStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.purchases, id)
	return nil
}

func (s *fakePurchaseStore) GetMany(_ context.Context, ids []primitive.ObjectID) ([]domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Purchase
	for _, id := range ids {
		if p, ok := s.purchases[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePurchaseStore) ListCompletedByProduct(_ context.Context, productID primitive.ObjectID) ([]domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Purchase
	for _, p := range s.purchases {
		if p.ProductID == productID && p.Status == domain.PurchaseStatusCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePurchaseStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID) ([]domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Purchase
	for _, p := range s.purchases {
		if p.SellerID != nil && *p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePurchaseStore) ListCompletedBySeller(_ context.Context, sellerID primitive.ObjectID) ([]domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Purchase
	for _, p := range s.purchases {
		if p.SellerID != nil && *p.SellerID == sellerID && p.Status == domain.PurchaseStatusCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePurchaseStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.purchases)
}

type fakeOrderStore struct {
	mu        sync.Mutex
	orders    []domain.Order
	createErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{}
}

func (s *fakeOrderStore) Create(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *fakeOrderStore) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (s *fakeOrderStore) ListByBuyer(_ context.Context, buyerID primitive.ObjectID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for i := range s.orders {
		if s.orders[i].BuyerID == buyerID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

func (s *fakeOrderStore) FindByPurchase(_ context.Context, purchaseID primitive.ObjectID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		for _, id := range s.orders[i].Purchases {
			if id == purchaseID {
				o := s.orders[i]
				return &o, nil
			}
		}
	}
	return nil, nil
}

func (s *fakeOrderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]domain.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

type fakeChatStore struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{}
}

func (s *fakeChatStore) Insert(_ context.Context, message *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = primitive.NewObjectID()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *fakeChatStore) ListConversation(_ context.Context, productID, userID, otherUserID primitive.ObjectID) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range s.messages {
		if m.ProductID != productID {
			continue
		}
		if (m.SenderID == userID && m.ReceiverID == otherUserID) ||
			(m.SenderID == otherUserID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeChatStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ChatMessage
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := s.messages[i]
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeChatStore) MarkRead(_ context.Context, productID, userID, otherUserID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		m := &s.messages[i]
		if m.ProductID == productID && m.SenderID == otherUserID && m.ReceiverID == userID {
			m.Read = true
		}
	}
	return nil
}

type fakeDemoStore struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]domain.DemoRequest
}

func newFakeDemoStore() *fakeDemoStore {
	return &fakeDemoStore{requests: map[primitive.ObjectID]domain.DemoRequest{}}
}

func (s *fakeDemoStore) Create(_ context.Context, request *domain.DemoRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request.ID = primitive.NewObjectID()
	s.requests[request.ID] = *request
	return nil
}

func (s *fakeDemoStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID) ([]domain.DemoRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DemoRequest
	for _, r := range s.requests {
		if r.SellerID == sellerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeDemoStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.DemoStatus) (*domain.DemoRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrDemoRequestNotFound
	}
	r.Status = status
	s.requests[id] = r
	return &r, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	orders   []events.OrderPlacedEvent
	depleted []events.StockDepletedEvent
}

func (p *fakePublisher) PublishOrderPlaced(_ context.Context, event events.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, event)
	return nil
}

func (p *fakePublisher) PublishStockDepleted(_ context.Context, event events.StockDepletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.depleted = append(p.depleted, event)
	return nil
}
