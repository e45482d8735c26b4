package httpserver

import (
	"errors"
	"log/slog"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
)

type Options func(s *Server) error

// New builds a Default server for cfg and applies options in order.
func New(cfg *config.Config, options ...Options) (*Server, error) {
	s := Default(cfg)
	for _, fn := range options {
		if err := fn(s); err != nil {
			return nil, err
		}
	}
	if s.MovieService == nil {
		return nil, errors.New("httpserver: movie service is required")
	}
	return s, nil
}

func WithLogger(logger *slog.Logger) Options {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("httpserver: logger is nil")
		}
		s.Logger = logger
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}
