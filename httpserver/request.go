package httpserver

import (
	"moviecatalog/movie"
)

// CreateMovieRequest is the POST body. The id is assigned by the store and
// schema checks run in the movie package so field details reach the client
// unchanged.
type CreateMovieRequest struct {
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int64   `json:"vote_count"`
	ReleaseDate string   `json:"release_date"`
	PosterPath  string   `json:"poster_path"`
	Overview    string   `json:"overview"`
	Budget      *int64   `json:"budget"`
	Revenue     *int64   `json:"revenue"`
	Runtime     int      `json:"runtime"`
	Genres      []string `json:"genres"`
}

func (r CreateMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:       r.Title,
		Tagline:     r.Tagline,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
		ReleaseDate: r.ReleaseDate,
		PosterPath:  r.PosterPath,
		Overview:    r.Overview,
		Budget:      r.Budget,
		Revenue:     r.Revenue,
		Runtime:     r.Runtime,
		Genres:      r.Genres,
	}
}

// UpdateMovieRequest is the PUT body. Fields left out of the JSON are not
// changed.
type UpdateMovieRequest struct {
	ID          int64     `json:"id" validate:"required,min=1"`
	Title       *string   `json:"title" validate:"omitempty,notblank"`
	Tagline     *string   `json:"tagline"`
	VoteAverage *float64  `json:"vote_average" validate:"omitempty,min=0"`
	VoteCount   *int64    `json:"vote_count" validate:"omitempty,min=0"`
	ReleaseDate *string   `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	PosterPath  *string   `json:"poster_path" validate:"omitempty,url"`
	Overview    *string   `json:"overview" validate:"omitempty,notblank"`
	Budget      *int64    `json:"budget" validate:"omitempty,min=0"`
	Revenue     *int64    `json:"revenue" validate:"omitempty,min=0"`
	Runtime     *int      `json:"runtime" validate:"omitempty,min=0"`
	Genres      *[]string `json:"genres"`
}

func (r UpdateMovieRequest) ToPatch() movie.Patch {
	return movie.Patch{
		Title:       r.Title,
		Tagline:     r.Tagline,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
		ReleaseDate: r.ReleaseDate,
		PosterPath:  r.PosterPath,
		Overview:    r.Overview,
		Budget:      r.Budget,
		Revenue:     r.Revenue,
		Runtime:     r.Runtime,
		Genres:      r.Genres,
	}
}
