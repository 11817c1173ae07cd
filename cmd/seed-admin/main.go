// Out-of-band seeding entry point. Creates the default admin account,
// skipping when one already exists.
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virajdomadia/E-Commerce-backend/internal/config"
	"github.com/virajdomadia/E-Commerce-backend/internal/service"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logrus.WithField("component", "seed-admin")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.WithError(err).Error("mongodb disconnect error")
		}
	}()

	st := store.NewMongo(client.Database(cfg.MongoDatabase))
	if err := service.SeedAdmin(ctx, st.Users); err != nil {
		log.WithError(err).Fatal("error seeding admin user")
	}
}
