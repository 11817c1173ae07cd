package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DeductStock atomically decrements countInStock by qty, but only
	// when at least qty units remain. Returns false when the product is
	// missing or the stock is insufficient at write time.
	DeductStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)

	// AddStock increments countInStock by qty. Used to compensate a
	// partially applied checkout.
	AddStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type CartStore interface {
	// GetByUser returns ErrNotFound when the user has no cart yet.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)

	// Save upserts the cart keyed by its user id.
	Save(ctx context.Context, cart *domain.Cart) error
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
