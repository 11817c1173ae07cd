package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password,omitempty"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Category     string             `bson:"category" json:"category"`
	Images       []string           `bson:"images" json:"images"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart holds one user's pending items. One cart per user, looked up by
// the user id.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Items  []CartItem         `bson:"items" json:"items"`
}

// ResolvedItem is a cart item with its product reference expanded to the
// full record.
type ResolvedItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ResolvedCart is the view returned by all cart endpoints.
type ResolvedCart struct {
	User  primitive.ObjectID `json:"user"`
	Items []ResolvedItem     `json:"items"`
}
