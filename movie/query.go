package movie

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Page is one window of query results. TotalAmount counts every record that
// matched before pagination.
type Page struct {
	Data        []Movie `json:"data"`
	TotalAmount int     `json:"totalAmount"`
	Offset      int     `json:"offset"`
	Limit       int     `json:"limit"`
}

// Apply runs the query pipeline over records: search, genre filter, sort,
// count, paginate. records is never modified. f is expected to have passed
// Validate.
func Apply(records []Movie, f Filter) Page {
	fold := cases.Fold()

	movies := filterBySearch(records, fold, f.Search, f.SearchBy)
	movies = filterByGenre(movies, fold, f.Genres)
	movies = sortByField(movies, f.SortBy, f.SortOrder)
	total := len(movies)

	offset, limit := f.offset(), f.limit()
	return Page{
		Data:        paginate(movies, offset, limit),
		TotalAmount: total,
		Offset:      offset,
		Limit:       limit,
	}
}

func filterBySearch(movies []Movie, fold cases.Caser, search, searchBy string) []Movie {
	if search == "" || searchBy == "" {
		return movies
	}
	term := fold.String(search)

	var match func(m Movie) bool
	switch searchBy {
	case SearchByTitle:
		match = func(m Movie) bool {
			return strings.Contains(fold.String(m.Title), term)
		}
	case SearchByGenres:
		match = func(m Movie) bool {
			return slices.ContainsFunc(m.Genres, func(g string) bool {
				return strings.Contains(fold.String(g), term)
			})
		}
	default:
		return movies
	}

	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}

func filterByGenre(movies []Movie, fold cases.Caser, genres []string) []Movie {
	if len(genres) == 0 {
		return movies
	}
	wanted := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		wanted[fold.String(g)] = struct{}{}
	}

	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if slices.ContainsFunc(m.Genres, func(g string) bool {
			_, ok := wanted[fold.String(g)]
			return ok
		}) {
			out = append(out, m)
		}
	}
	return out
}

func sortByField(movies []Movie, sortBy, sortOrder string) []Movie {
	if sortBy == "" {
		return movies
	}
	compare, ok := comparatorFor(sortBy)
	if !ok {
		return movies
	}
	if sortOrder == SortDesc {
		asc := compare
		compare = func(a, b Movie) int { return asc(b, a) }
	}

	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func paginate(movies []Movie, offset, limit int) []Movie {
	if offset < 0 || limit <= 0 || offset >= len(movies) {
		return []Movie{}
	}
	end := offset + min(limit, len(movies)-offset)
	return slices.Clone(movies[offset:end])
}
