package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/virajdomadia/E-Commerce-backend/internal/domain"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

const tokenTTL = 24 * time.Hour

type jwtClaims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// Auth issues and validates HS256 bearer tokens and backs the
// register/login endpoints.
type Auth struct {
	secret []byte
	users  store.UserStore
}

func NewAuth(secret []byte, users store.UserStore) *Auth {
	return &Auth{secret: secret, users: users}
}

func (a *Auth) signToken(u *domain.User) (string, error) {
	claims := jwtClaims{
		UserID:  u.ID.Hex(),
		IsAdmin: u.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Middleware validates the bearer token and attaches the user identity
// to the request context.
func (a *Auth) Middleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if len(header) < 8 || header[:7] != "Bearer " {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}
	token, err := jwt.ParseWithClaims(header[7:], &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}
	claims, ok := token.Claims.(*jwtClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}
	c.Set("userID", userID)
	c.Set("isAdmin", claims.IsAdmin)
	c.Next()
}

// AdminOnly must run after Middleware.
func AdminOnly(c *gin.Context) {
	if !c.GetBool("isAdmin") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
		return
	}
	c.Next()
}

func currentUserID(c *gin.Context) primitive.ObjectID {
	return c.MustGet("userID").(primitive.ObjectID)
}

// ----- Handlers -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	if _, err := s.users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		s.fail(c, err, "error registering user")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.fail(c, err, "error registering user")
		return
	}
	user := &domain.User{Name: req.Name, Email: req.Email, Password: string(hashed)}
	if err := s.users.Create(c.Request.Context(), user); err != nil {
		s.fail(c, err, "error registering user")
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	user, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	if err != nil {
		s.fail(c, err, "error logging in")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	token, err := s.auth.signToken(user)
	if err != nil {
		s.fail(c, err, "error logging in")
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
