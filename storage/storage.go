// Package storage opens the movie repository selected by STORE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"moviecatalog/dynamodb"
	"moviecatalog/jsonfile"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"strconv"
)

// Open returns the configured repository and a func that releases it.
func Open(ctx context.Context, cfg *config.Config) (movie.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case "", config.DriverJSON:
		return jsonfile.NewMovieRepository(cfg.Store.DataFile), noop, nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return postgres.NewMovieRepository(db), sqlDB.Close, nil

	case config.DriverDynamoDB:
		repo, err := dynamodb.OpenMovieRepository(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
			MoviesTable:  cfg.DynamoDB.MoviesTable,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open dynamodb: %w", err)
		}
		return repo, noop, nil
	}

	return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Store.Driver)
}
