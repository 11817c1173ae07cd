package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
)

// Memory is an in-memory mirror of the Mongo stores, used by tests and
// for running the server without a database. Each sub-store guards its
// map with its own lock, matching Mongo's per-document write atomicity.
type Memory struct {
	Products *MemoryProducts
	Carts    *MemoryCarts
	Users    *MemoryUsers
}

func NewMemory() *Memory {
	return &Memory{
		Products: &MemoryProducts{byID: make(map[primitive.ObjectID]domain.Product)},
		Carts:    &MemoryCarts{byUser: make(map[primitive.ObjectID]domain.Cart)},
		Users:    &MemoryUsers{byID: make(map[primitive.ObjectID]domain.User)},
	}
}

// ----- Products -----

type MemoryProducts struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]domain.Product
}

var _ ProductStore = (*MemoryProducts)(nil)

func copyProduct(p domain.Product) domain.Product {
	cp := p
	cp.Images = append([]string(nil), p.Images...)
	return cp
}

func (s *MemoryProducts) List(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]domain.Product, 0, len(s.byID))
	for _, p := range s.byID {
		products = append(products, copyProduct(p))
	}
	return products, nil
}

func (s *MemoryProducts) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyProduct(p)
	return &cp, nil
}

func (s *MemoryProducts) Create(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.byID[p.ID] = copyProduct(*p)
	return nil
}

func (s *MemoryProducts) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; !ok {
		return nil, ErrNotFound
	}
	s.byID[p.ID] = copyProduct(*p)
	cp := copyProduct(*p)
	return &cp, nil
}

func (s *MemoryProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *MemoryProducts) DeductStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok || p.CountInStock < qty {
		return false, nil
	}
	p.CountInStock -= qty
	s.byID[id] = p
	return true, nil
}

func (s *MemoryProducts) AddStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil
	}
	p.CountInStock += qty
	s.byID[id] = p
	return nil
}

// ----- Carts -----

type MemoryCarts struct {
	mu     sync.RWMutex
	byUser map[primitive.ObjectID]domain.Cart
}

var _ CartStore = (*MemoryCarts)(nil)

func copyCart(c domain.Cart) domain.Cart {
	cp := c
	cp.Items = append([]domain.CartItem{}, c.Items...)
	return cp
}

func (s *MemoryCarts) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyCart(c)
	return &cp, nil
}

func (s *MemoryCarts) Save(ctx context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	s.byUser[cart.UserID] = copyCart(*cart)
	return nil
}

// ----- Users -----

type MemoryUsers struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]domain.User
}

var _ UserStore = (*MemoryUsers)(nil)

func (s *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.byID[u.ID] = *u
	return nil
}
