package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

// ProductService is the catalog CRUD layer. Writes are admin-gated at
// the HTTP layer, not here.
type ProductService struct {
	products store.ProductStore
	log      *logrus.Entry
}

func NewProductService(products store.ProductStore) *ProductService {
	return &ProductService{
		products: products,
		log:      logrus.WithField("component", "catalog"),
	}
}

func validateProduct(p *domain.Product) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.CountInStock < 0 {
		return fmt.Errorf("%w: countInStock must not be negative", ErrInvalidInput)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.log.WithField("product", p.ID.Hex()).Info("product created")
	return &p, nil
}

// Update replaces the mutable fields of the product wholesale.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	p.ID = id
	updated, err := s.products.Update(ctx, &p)
	if err != nil {
		return nil, err
	}
	s.log.WithField("product", id.Hex()).Info("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("product", id.Hex()).Info("product deleted")
	return nil
}
