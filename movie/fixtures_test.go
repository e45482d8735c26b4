package movie_test

import (
	"context"
	"moviecatalog/movie"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) LoadAll(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) SaveAll(ctx context.Context, movies []movie.Movie) error {
	args := m.Called(ctx, movies)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func laLaLand() movie.Movie {
	return movie.Movie{
		ID:          1,
		Title:       "La La Land",
		Tagline:     "Here's to the fools who dream.",
		VoteAverage: ptr(7.9),
		VoteCount:   ptr(int64(6782)),
		ReleaseDate: "2016-12-29",
		PosterPath:  "https://image.tmdb.org/t/p/w500/ylXCdC106IKiarftHkcacasaAcb.jpg",
		Overview:    "Mia, an aspiring actress, serves lattes to movie stars.",
		Budget:      ptr(int64(30000000)),
		Revenue:     ptr(int64(445435700)),
		Runtime:     128,
		Genres:      []string{"Drama", "Comedy"},
	}
}

func whiplash() movie.Movie {
	return movie.Movie{
		ID:          2,
		Title:       "Whiplash",
		ReleaseDate: "2014-10-10",
		PosterPath:  "https://image.tmdb.org/t/p/w500/lIv1QinFqz4dlp5U4lQ6HaiskOZ.jpg",
		Overview:    "Under the direction of a ruthless instructor, a talented young drummer begins to pursue perfection.",
		Runtime:     105,
		Genres:      []string{"Drama"},
	}
}

func amelie() movie.Movie {
	return movie.Movie{
		ID:          3,
		Title:       "Amélie",
		VoteAverage: ptr(7.8),
		ReleaseDate: "2001-04-25",
		PosterPath:  "https://image.tmdb.org/t/p/w500/nSxDa3M9aMvGVLoItzWTepQ5h5d.jpg",
		Overview:    "At a tiny Parisian café, the adorable yet painfully shy Amélie accidentally discovers a gift for helping others.",
		Budget:      ptr(int64(10000000)),
		Runtime:     122,
		Genres:      []string{"Comedy", "Romance"},
	}
}

func catalog() []movie.Movie {
	return []movie.Movie{laLaLand(), whiplash(), amelie()}
}

// newLoadedStore returns a store loaded with movies and the repository mock
// backing it, with no SaveAll expectation registered.
func newLoadedStore(t *testing.T, movies []movie.Movie) (*movie.Store, *MockMovieRepository) {
	t.Helper()
	r := new(MockMovieRepository)
	r.On("LoadAll", mock.Anything).Return(movies, nil).Once()

	s := movie.NewStore(r, movie.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, s.Load(context.Background()))
	return s, r
}

func ptr[T any](v T) *T {
	return &v
}

func ids(movies []movie.Movie) []int64 {
	out := make([]int64, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}
