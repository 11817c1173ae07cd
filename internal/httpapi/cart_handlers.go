package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Server) getCart(c *gin.Context) {
	cart, err := s.cart.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err, "error fetching cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addToCartReq struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (s *Server) addToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	cart, err := s.cart.AddItem(c.Request.Context(), currentUserID(c), productID, quantity)
	if err != nil {
		s.fail(c, err, "error updating cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

type updateQuantityReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) updateQuantity(c *gin.Context) {
	var req updateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}
	cart, err := s.cart.UpdateQuantity(c.Request.Context(), currentUserID(c), productID, req.Quantity)
	if err != nil {
		s.fail(c, err, "error updating quantity")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) removeItem(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}
	cart, err := s.cart.RemoveItem(c.Request.Context(), currentUserID(c), productID)
	if err != nil {
		s.fail(c, err, "error removing item")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) checkout(c *gin.Context) {
	if err := s.cart.Checkout(c.Request.Context(), currentUserID(c)); err != nil {
		s.fail(c, err, "checkout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order placed successfully"})
}
