package main

import (
	"context"
	"errors"
	"log/slog"
	_ "moviecatalog/docs"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/sentry"
	"moviecatalog/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title Movie Catalog API
// @version 1.0
// @description Query, filter, sort, paginate and edit a catalog of movies.
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("Cannot open movie storage", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			slog.Error("Cannot close movie storage", "error", err)
		}
	}()

	store := movie.NewStore(repo)
	if err := store.Load(ctx); err != nil {
		sentry.Fatal(err)
		slog.Error("Cannot load movie catalog", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("movie catalog loaded", "driver", cfg.Store.Driver, "movies", store.Len())

	server, err := httpserver.New(cfg,
		httpserver.WithLogger(logger),
		httpserver.WithMovieService(movie.NewUsecase(store)),
	)
	if err != nil {
		slog.Error("Cannot create server", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started!", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
