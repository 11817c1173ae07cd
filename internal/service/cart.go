package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

const resolveConcurrency = 8

// CartService owns the cart-item lifecycle and the checkout workflow.
//
// Every operation runs under a per-user mutex, so the read-mutate-write
// cycle on one cart is serialized within this process. Stock deduction
// additionally relies on the store's conditional decrement, which keeps
// concurrent checkouts of different users from over-deducting a shared
// product.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
	log      *logrus.Entry

	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func NewCartService(carts store.CartStore, products store.ProductStore) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		log:      logrus.WithField("component", "cart"),
		locks:    make(map[primitive.ObjectID]*sync.Mutex),
	}
}

func (s *CartService) userLock(userID primitive.ObjectID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// GetCart returns the user's cart with every item's product expanded.
// Missing carts read as an empty view. This is a side-effecting read:
// items whose product was deleted are dropped and the pruned cart is
// persisted before returning.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*domain.ResolvedCart, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.ResolvedCart{User: userID, Items: []domain.ResolvedItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

// AddItem appends the product to the user's cart, creating the cart on
// first use. Adding a product already in the cart accumulates its
// quantity. The product reference is not validated here; a dangling
// reference surfaces and self-heals on the next read.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*domain.ResolvedCart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	} else if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

// UpdateQuantity sets the item's quantity, then prunes every item whose
// quantity ended up at or below zero.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*domain.ResolvedCart, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

// RemoveItem deletes the product's line item. Removing a product that is
// not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*domain.ResolvedCart, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

// Checkout validates every item against current stock, deducts the stock
// and empties the cart. Validation is a full pre-pass: no stock moves
// until every item has passed. If a deduction still loses a race with a
// concurrent checkout, the deductions already applied are rolled back,
// so checkout never commits partially.
func (s *CartService) Checkout(ctx context.Context, userID primitive.ObjectID) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEmptyCart
	}
	if err != nil {
		return err
	}
	if len(cart.Items) == 0 {
		return ErrEmptyCart
	}

	// Validation pass. An item referencing a deleted product aborts the
	// whole checkout here; it is the read path that self-heals, not this
	// one.
	for _, item := range cart.Items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidItem
		}
		if err != nil {
			return err
		}
		if p.CountInStock < item.Quantity {
			return &InsufficientStockError{Title: p.Title, Available: p.CountInStock, Requested: item.Quantity}
		}
	}

	// Deduction pass.
	for i, item := range cart.Items {
		ok, err := s.products.DeductStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.compensate(ctx, cart.Items[:i])
			return err
		}
		if !ok {
			// Lost a race between validation and deduction.
			s.compensate(ctx, cart.Items[:i])
			p, gerr := s.products.GetByID(ctx, item.ProductID)
			if gerr != nil {
				return ErrInvalidItem
			}
			return &InsufficientStockError{Title: p.Title, Available: p.CountInStock, Requested: item.Quantity}
		}
	}

	cart.Items = []domain.CartItem{}
	if err := s.carts.Save(ctx, cart); err != nil {
		return err
	}
	return nil
}

// compensate restores stock for deductions already applied by a checkout
// that cannot complete.
func (s *CartService) compensate(ctx context.Context, items []domain.CartItem) {
	for _, item := range items {
		if err := s.products.AddStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.WithError(err).WithField("product", item.ProductID.Hex()).Error("stock compensation failed")
		}
	}
}

// resolve expands each item's product reference. Items whose product no
// longer exists are dropped, and when any were dropped the pruned cart
// is persisted.
func (s *CartService) resolve(ctx context.Context, cart *domain.Cart) (*domain.ResolvedCart, error) {
	resolved := make([]*domain.Product, len(cart.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i := range cart.Items {
		i := i
		g.Go(func() error {
			p, err := s.products.GetByID(gctx, cart.Items[i].ProductID)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			resolved[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &domain.ResolvedCart{User: cart.UserID, Items: []domain.ResolvedItem{}}
	kept := make([]domain.CartItem, 0, len(cart.Items))
	for i, item := range cart.Items {
		if resolved[i] == nil {
			continue
		}
		kept = append(kept, item)
		view.Items = append(view.Items, domain.ResolvedItem{Product: *resolved[i], Quantity: item.Quantity})
	}

	if len(kept) != len(cart.Items) {
		s.log.WithFields(logrus.Fields{
			"user":    cart.UserID.Hex(),
			"dropped": len(cart.Items) - len(kept),
		}).Info("pruned cart items referencing deleted products")
		cart.Items = kept
		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return view, nil
}
