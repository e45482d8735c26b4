package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"moviecatalog/movie"
	"os"
	"path/filepath"
)

// MovieRepository keeps the whole catalog in a single JSON array file.
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so readers never see a partially written file.
type MovieRepository struct {
	path string
}

// NewMovieRepository creates a new repository backed by the file at path.
func NewMovieRepository(path string) *MovieRepository {
	return &MovieRepository{path: path}
}

// LoadAll reads every movie from the file. A missing file is an empty catalog.
func (r *MovieRepository) LoadAll(ctx context.Context) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []movie.Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", r.path, err)
	}

	var movies []movie.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w", r.path, err)
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	return movies, nil
}

// SaveAll replaces the file contents with movies.
func (r *MovieRepository) SaveAll(ctx context.Context, movies []movie.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}

	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", r.path, err)
	}
	return nil
}
