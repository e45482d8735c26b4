package httpserver

import (
	"errors"
	"moviecatalog/errs"
	"moviecatalog/movie"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
	g.POST("/movies", s.handleCreateMovie)
	g.PUT("/movies", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Search, filter by genre, sort and paginate the catalog
// @Tags movies
// @Produce json
// @Param sortBy query string false "Field to sort by (title, vote_average, release_date, ...)"
// @Param sortOrder query string false "asc or desc, default asc"
// @Param search query string false "Case-insensitive substring"
// @Param searchBy query string false "title or genres; search is ignored without it"
// @Param filter query []string false "Genres, repeated or comma separated"
// @Param offset query int false "Records to skip, default 0"
// @Param limit query int false "Max records, default 10"
// @Success 200 {object} APIResponse{result=movie.Page}
// @Failure 400 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}

	page, err := s.MovieService.FindAll(c.Request().Context(), f)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, page)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse{result=movie.Movie}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.FindOne(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Add a movie; the id is assigned by the server
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} APIResponse{result=movie.Movie}
// @Failure 400 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	created, err := s.MovieService.Create(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, created)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Merge the given fields into the movie identified by id
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} APIResponse{result=movie.Movie}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.MovieService.Update(c.Request().Context(), req.ID, req.ToPatch())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, updated)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if _, err := s.MovieService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

var (
	errInvalidBody = errs.Errorf(errs.EINVALID, "invalid request body")
	errInvalidID   = errs.Errorf(errs.EINVALID, "movie id must be an integer")
)

func movieID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// parseFilter reads the list query. Offset and limit stay nil when absent so
// the query pipeline applies its defaults.
func parseFilter(c echo.Context) (movie.Filter, error) {
	var (
		f      movie.Filter
		genres []string
		offset int
		limit  int
	)
	err := echo.QueryParamsBinder(c).
		String("sortBy", &f.SortBy).
		String("sortOrder", &f.SortOrder).
		String("search", &f.Search).
		String("searchBy", &f.SearchBy).
		Strings("filter", &genres).
		Int("offset", &offset).
		Int("limit", &limit).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return f, movie.MalformedFilter("%s must be an integer", be.Field)
		}
		return f, movie.MalformedFilter("%v", err)
	}

	for _, g := range genres {
		for _, name := range strings.Split(g, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Genres = append(f.Genres, name)
			}
		}
	}
	if c.QueryParam("offset") != "" {
		f.Offset = &offset
	}
	if c.QueryParam("limit") != "" {
		f.Limit = &limit
	}
	return f, nil
}
