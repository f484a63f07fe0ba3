package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tour-booking/internal/data/repository"
	"tour-booking/pkg/database"
	"tour-booking/pkg/utils"
)

// storage is an opened backend plus its migration and close hooks.
type storage struct {
	repo    *repository.Repository
	migrate func(ctx context.Context) error
	close   func(ctx context.Context)
}

func openStorage(ctx context.Context, config *utils.Config, logger *zap.Logger) (*storage, error) {
	switch config.Database.Driver {
	case utils.DriverPostgres:
		db, err := database.InitPostgres(ctx, config.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("Database connected", zap.String("driver", utils.DriverPostgres))
		return &storage{
			repo:    repository.NewPostgresRepository(db, logger),
			migrate: func(ctx context.Context) error { return repository.MigratePostgres(ctx, db) },
			close:   func(context.Context) { db.Close() },
		}, nil

	case utils.DriverMemory:
		return &storage{
			repo:    repository.NewMemoryRepository(logger),
			migrate: func(context.Context) error { return nil },
			close:   func(context.Context) {},
		}, nil

	default:
		mongo, err := database.InitMongo(ctx, config.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		logger.Info("Database connected",
			zap.String("driver", utils.DriverMongo),
			zap.String("database", config.Mongo.Database),
		)
		return &storage{
			repo:    repository.NewMongoRepository(mongo.DB, logger),
			migrate: func(ctx context.Context) error { return repository.EnsureMongoIndexes(ctx, mongo.DB) },
			close: func(ctx context.Context) {
				if err := mongo.Close(ctx); err != nil {
					logger.Warn("Failed to close mongo client", zap.Error(err))
				}
			},
		}, nil
	}
}
