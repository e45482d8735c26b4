package postgres_test

import (
	"context"
	"moviecatalog/movie"
	"moviecatalog/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMovieRepository_SaveAll(t *testing.T) {
	// Arrange - Setup shared database container and connection
	dbName, dbUser, dbPass := "movie_save_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("round trips records in catalog order", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		movies := testMovies()

		// Act
		err := repo.SaveAll(context.Background(), movies)
		require.NoError(t, err)
		loaded, err := repo.LoadAll(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, movies, loaded)
	})

	t.Run("replaces previously saved records", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		require.NoError(t, repo.SaveAll(context.Background(), testMovies()))

		// Act
		err := repo.SaveAll(context.Background(), testMovies()[1:])

		// Assert
		require.NoError(t, err)
		assertMovieCount(t, db, 1)
	})

	t.Run("saving an empty catalog clears the table", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		require.NoError(t, repo.SaveAll(context.Background(), testMovies()))

		// Act
		err := repo.SaveAll(context.Background(), []movie.Movie{})

		// Assert
		require.NoError(t, err)
		assertMovieCount(t, db, 0)
	})
}

func TestMovieRepository_LoadAll(t *testing.T) {
	dbName, dbUser, dbPass := "movie_load_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("returns empty list when no movies exist", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		movies, err := repo.LoadAll(context.Background())

		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("feeds a store that survives a restart", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		store := movie.NewStore(repo)
		require.NoError(t, store.Load(context.Background()))

		created, err := store.Create(context.Background(), testMovies()[0])
		require.NoError(t, err)

		restarted := movie.NewStore(repo)
		require.NoError(t, restarted.Load(context.Background()))
		found, ok := restarted.FindByID(created.ID)
		assert.True(t, ok)
		assert.Equal(t, created, found)
	})

	t.Run("fails with closed database connection", func(t *testing.T) {
		repo := postgres.NewMovieRepository(db)
		mustCloseDBConnection(db)

		_, err := repo.LoadAll(context.Background())

		assert.Error(t, err)
	})
}

func testMovies() []movie.Movie {
	rating := 7.9
	votes := int64(6782)
	budget := int64(30000000)
	return []movie.Movie{
		{
			ID:          313369,
			Title:       "La La Land",
			Tagline:     "Here's to the fools who dream.",
			VoteAverage: &rating,
			VoteCount:   &votes,
			ReleaseDate: "2016-12-29",
			PosterPath:  "https://image.tmdb.org/t/p/w500/ylXCdC106IKiarftHkcacasaAcb.jpg",
			Overview:    "Mia, an aspiring actress...",
			Budget:      &budget,
			Runtime:     128,
			Genres:      []string{"Comedy", "Drama", "Romance"},
		},
		{
			ID:          244786,
			Title:       "Whiplash",
			ReleaseDate: "2014-10-10",
			PosterPath:  "https://image.tmdb.org/t/p/w500/lIv1QinFqz4dlp5U4lQ6HaiskOZ.jpg",
			Overview:    "Under the direction of a ruthless instructor...",
			Runtime:     105,
			Genres:      []string{},
		},
	}
}

func mustCloseDBConnection(db *gorm.DB) {
	sqlDB, _ := db.DB()
	sqlDB.Close()
}

func assertMovieCount(t testing.TB, db *gorm.DB, expected int64) {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&postgres.MovieModel{}).Count(&count).Error)
	assert.Equal(t, expected, count)
}

// cleanupMovieDatabase truncates the movies table to ensure test isolation
func cleanupMovieDatabase(t testing.TB, db *gorm.DB) {
	t.Helper()
	err := db.Exec("TRUNCATE TABLE movies").Error
	require.NoError(t, err)
}
