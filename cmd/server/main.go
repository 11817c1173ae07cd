package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virajdomadia/E-Commerce-backend/internal/config"
	"github.com/virajdomadia/E-Commerce-backend/internal/httpapi"
	"github.com/virajdomadia/E-Commerce-backend/internal/service"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

func main() {
	cfg := config.Load()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	log := logrus.WithField("component", "server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.WithError(err).Fatal("failed to reach mongodb")
	}
	log.WithField("db", cfg.MongoDatabase).Info("connected to mongodb")

	st := store.NewMongo(client.Database(cfg.MongoDatabase))
	products := service.NewProductService(st.Products)
	cart := service.NewCartService(st.Carts, st.Products)
	srv := httpapi.NewServer(products, cart, st.Users, []byte(cfg.JWTSecret), cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}
	go func() {
		log.WithField("addr", httpServer.Addr).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Error("mongodb disconnect error")
	}
	log.Info("server stopped")
}
