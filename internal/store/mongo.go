package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
)

// Mongo bundles the per-collection stores built on one database handle.
type Mongo struct {
	Products *MongoProducts
	Carts    *MongoCarts
	Users    *MongoUsers
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		Products: &MongoProducts{col: db.Collection("products")},
		Carts:    &MongoCarts{col: db.Collection("carts")},
		Users:    &MongoUsers{col: db.Collection("users")},
	}
}

// ----- Products -----

type MongoProducts struct {
	col *mongo.Collection
}

var _ ProductStore = (*MongoProducts)(nil)

func (s *MongoProducts) List(ctx context.Context) ([]domain.Product, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProducts) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoProducts) Create(ctx context.Context, p *domain.Product) error {
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoProducts) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	update := bson.M{"$set": bson.M{
		"title":        p.Title,
		"description":  p.Description,
		"price":        p.Price,
		"category":     p.Category,
		"images":       p.Images,
		"countInStock": p.CountInStock,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Product
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProducts) DeductStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	// Conditional decrement: the filter only matches while enough stock
	// remains, so countInStock can never go negative.
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "countInStock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"countInStock": -qty}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoProducts) AddStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"countInStock": qty}},
	)
	return err
}

// ----- Carts -----

type MongoCarts struct {
	col *mongo.Collection
}

var _ CartStore = (*MongoCarts)(nil)

func (s *MongoCarts) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.col.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *MongoCarts) Save(ctx context.Context, cart *domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": cart.UserID},
		bson.M{"$set": bson.M{"user": cart.UserID, "items": items}},
		options.Update().SetUpsert(true),
	)
	return err
}

// ----- Users -----

type MongoUsers struct {
	col *mongo.Collection
}

var _ UserStore = (*MongoUsers)(nil)

func (s *MongoUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUsers) Create(ctx context.Context, u *domain.User) error {
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
