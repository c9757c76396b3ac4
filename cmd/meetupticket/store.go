package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"meetupticket/config"
	"meetupticket/internal/domain"
	"meetupticket/internal/repository/memory"
	"meetupticket/internal/repository/mongo"
	"meetupticket/internal/repository/postgres"
)

// documentStore is a gateway binding that can also create its indexes.
type documentStore interface {
	domain.DocumentStore
	domain.IndexEnsurer
}

// openStore connects the binding named by cfg.StoreDriver. The returned close
// func releases the connection.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (documentStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		logger.Info("document store connected", "driver", cfg.StoreDriver)
		return postgres.NewDocumentStore(db), func() { _ = db.Close() }, nil
	case config.DriverMongo:
		db, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		logger.Info("document store connected", "driver", cfg.StoreDriver, "database", cfg.MongoDatabase)
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(ctx)
		}
		return mongo.NewDocumentStore(db), closeFn, nil
	default:
		store := memory.NewStore()
		store.SeedDemoEvent(time.Now())
		logger.Warn("using in-memory document store with a demo event; data is lost on exit")
		return store, func() {}, nil
	}
}
