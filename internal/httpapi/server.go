package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/virajdomadia/E-Commerce-backend/internal/service"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

type Server struct {
	engine   *gin.Engine
	products *service.ProductService
	cart     *service.CartService
	users    store.UserStore
	auth     *Auth
	log      *logrus.Entry
}

func NewServer(products *service.ProductService, cart *service.CartService, users store.UserStore, jwtSecret []byte, origins []string) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), metricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	s := &Server{
		engine:   r,
		products: products,
		cart:     cart,
		users:    users,
		auth:     NewAuth(jwtSecret, users),
		log:      logrus.WithField("component", "http"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)

	admin := api.Group("/products", s.auth.Middleware, AdminOnly)
	{
		admin.POST("", s.createProduct)
		admin.PUT("/:id", s.updateProduct)
		admin.DELETE("/:id", s.deleteProduct)
	}

	cart := api.Group("/cart", s.auth.Middleware)
	{
		cart.GET("", s.getCart)
		cart.POST("/add", s.addToCart)
		cart.PUT("/update", s.updateQuantity)
		cart.DELETE("/remove/:productId", s.removeItem)
		cart.POST("/checkout", s.checkout)
	}
}

func requestLogger() gin.HandlerFunc {
	log := logrus.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	}
}
