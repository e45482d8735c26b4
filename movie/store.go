package movie

import (
	"context"
	"fmt"
	"moviecatalog/errs"
	"slices"
	"sync"
	"time"
)

// Repository loads and saves the whole record set. Implementations must
// treat SaveAll as a full replacement of the persisted state.
type Repository interface {
	LoadAll(ctx context.Context) ([]Movie, error)
	SaveAll(ctx context.Context, movies []Movie) error
}

// Store owns the canonical in-memory record set. Mutations hold the write
// lock across the in-memory change and the repository write, and the new
// set replaces the old one only after SaveAll succeeded.
type Store struct {
	mu     sync.RWMutex
	r      Repository
	movies []Movie
	now    func() time.Time
}

type StoreOption func(s *Store)

// WithClock overrides the time source used for id generation.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(r Repository, opts ...StoreOption) *Store {
	s := &Store{
		r:   r,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory set with the repository contents.
func (s *Store) Load(ctx context.Context) error {
	movies, err := s.r.LoadAll(ctx)
	if err != nil {
		return persistenceError(err, "cannot load movies")
	}

	seen := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.ID]; ok {
			return persistenceError(fmt.Errorf("%w: %d", ErrDuplicateID, m.ID), "cannot load movies")
		}
		seen[m.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = movies
	return nil
}

func (s *Store) FindByID(id int64) (Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Movie{}, false
	}
	return s.movies[i].clone(), true
}

// Create validates m, assigns it a fresh id and persists the new set.
// Any id already set on m is ignored.
func (s *Store) Create(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := m.clone()
	created.ID = s.nextID()

	next := make([]Movie, len(s.movies), len(s.movies)+1)
	copy(next, s.movies)
	next = append(next, created)

	if err := s.commit(ctx, next); err != nil {
		return Movie{}, err
	}
	return created.clone(), nil
}

// Update merges p onto the record with the given id. It returns ErrNotFound
// when no such record exists.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Movie{}, ErrNotFound
	}

	merged := s.movies[i].Merge(p)
	if err := merged.ValidatePatch(p); err != nil {
		return Movie{}, err
	}

	next := slices.Clone(s.movies)
	next[i] = merged

	if err := s.commit(ctx, next); err != nil {
		return Movie{}, err
	}
	return merged.clone(), nil
}

// Delete removes the record with the given id. The boolean is false, with a
// nil error, when no such record exists.
func (s *Store) Delete(ctx context.Context, id int64) (Movie, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Movie{}, false, nil
	}

	removed := s.movies[i]
	next := slices.Delete(slices.Clone(s.movies), i, i+1)

	if err := s.commit(ctx, next); err != nil {
		return Movie{}, false, err
	}
	return removed.clone(), true, nil
}

// Snapshot returns a deep copy of the record set.
func (s *Store) Snapshot() []Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Movie, len(s.movies))
	for i, m := range s.movies {
		out[i] = m.clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// commit must be called with the write lock held.
func (s *Store) commit(ctx context.Context, next []Movie) error {
	if err := s.r.SaveAll(ctx, next); err != nil {
		return persistenceError(err, "cannot save movies")
	}
	s.movies = next
	return nil
}

// nextID must be called with the write lock held.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for _, m := range s.movies {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.movies, func(m Movie) bool {
		return m.ID == id
	})
}

func persistenceError(err error, message string) error {
	return errs.Wrap(errs.EINTERNAL, fmt.Errorf("%w: %w", ErrPersistence, err), message)
}
