package postgres

import (
	"context"
	"moviecatalog/movie"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const saveBatchSize = 200

// MovieModel represents the database model for movies.
// Position keeps the catalog order across load/save.
type MovieModel struct {
	ID          int64          `gorm:"primaryKey;autoIncrement:false"`
	Position    int            `gorm:"not null"`
	Title       string         `gorm:"not null"`
	Tagline     string         `gorm:"not null;default:''"`
	VoteAverage *float64
	VoteCount   *int64
	ReleaseDate string         `gorm:"not null"`
	PosterPath  string         `gorm:"not null"`
	Overview    string         `gorm:"not null"`
	Budget      *int64
	Revenue     *int64
	Runtime     int            `gorm:"not null"`
	Genres      pq.StringArray `gorm:"type:text[];not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository on top of a single table.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) LoadAll(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("position, id").Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies, nil
}

// SaveAll replaces the table contents inside one transaction.
func (r *MovieRepository) SaveAll(ctx context.Context, movies []movie.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM movies").Error; err != nil {
			return err
		}
		if len(movies) == 0 {
			return nil
		}

		models := make([]MovieModel, len(movies))
		for i, m := range movies {
			models[i] = newMovieModel(i, m)
		}
		return tx.CreateInBatches(models, saveBatchSize).Error
	})
}

func newMovieModel(position int, m movie.Movie) MovieModel {
	genres := pq.StringArray(m.Genres)
	if genres == nil {
		genres = pq.StringArray{}
	}
	return MovieModel{
		ID:          m.ID,
		Position:    position,
		Title:       m.Title,
		Tagline:     m.Tagline,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		ReleaseDate: m.ReleaseDate,
		PosterPath:  m.PosterPath,
		Overview:    m.Overview,
		Budget:      m.Budget,
		Revenue:     m.Revenue,
		Runtime:     m.Runtime,
		Genres:      genres,
	}
}

func (model MovieModel) toMovie() movie.Movie {
	genres := []string(model.Genres)
	if genres == nil {
		genres = []string{}
	}
	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		Tagline:     model.Tagline,
		VoteAverage: model.VoteAverage,
		VoteCount:   model.VoteCount,
		ReleaseDate: model.ReleaseDate,
		PosterPath:  model.PosterPath,
		Overview:    model.Overview,
		Budget:      model.Budget,
		Revenue:     model.Revenue,
		Runtime:     model.Runtime,
		Genres:      genres,
	}
}
