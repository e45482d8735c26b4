package movie

import (
	"cmp"
	"errors"
	"fmt"
	"moviecatalog/errs"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	SearchByTitle  = "title"
	SearchByGenres = "genres"

	DefaultOffset = 0
	DefaultLimit  = 10
)

// ErrMalformedFilter is the cause of every filter rejection.
var ErrMalformedFilter = errors.New("malformed filter")

var (
	ErrNegativeOffset   = MalformedFilter("offset must not be negative")
	ErrNegativeLimit    = MalformedFilter("limit must not be negative")
	ErrInvalidSortOrder = MalformedFilter("sortOrder must be asc or desc")
	ErrInvalidSearchBy  = MalformedFilter("searchBy must be title or genres")
	ErrUnknownSortField = MalformedFilter("unknown sortBy field")
)

// MalformedFilter returns an invalid-input error caused by ErrMalformedFilter.
func MalformedFilter(format string, args ...interface{}) *errs.Error {
	return &errs.Error{
		Code:    errs.EINVALID,
		Message: "malformed filter: " + fmt.Sprintf(format, args...),
		Err:     ErrMalformedFilter,
	}
}

// Filter describes one catalog query. Genres are OR-matched against the
// record genres. Nil Offset and Limit fall back to DefaultOffset and
// DefaultLimit.
type Filter struct {
	SortBy    string
	SortOrder string
	Search    string
	SearchBy  string
	Genres    []string
	Offset    *int
	Limit     *int
}

// Validate rejects filters the query pipeline cannot run.
func (f Filter) Validate() error {
	if f.Offset != nil && *f.Offset < 0 {
		return ErrNegativeOffset
	}
	if f.Limit != nil && *f.Limit < 0 {
		return ErrNegativeLimit
	}
	switch f.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return ErrInvalidSortOrder
	}
	switch f.SearchBy {
	case "", SearchByTitle, SearchByGenres:
	default:
		return ErrInvalidSearchBy
	}
	if f.SortBy != "" {
		if _, ok := comparatorFor(f.SortBy); !ok {
			return ErrUnknownSortField
		}
	}
	return nil
}

func (f Filter) offset() int {
	if f.Offset == nil {
		return DefaultOffset
	}
	return *f.Offset
}

func (f Filter) limit() int {
	if f.Limit == nil {
		return DefaultLimit
	}
	return *f.Limit
}

type comparator func(a, b Movie) int

var sortFields = map[string]comparator{
	"id":           func(a, b Movie) int { return cmp.Compare(a.ID, b.ID) },
	"title":        func(a, b Movie) int { return cmp.Compare(a.Title, b.Title) },
	"tagline":      func(a, b Movie) int { return cmp.Compare(a.Tagline, b.Tagline) },
	"vote_average": func(a, b Movie) int { return compareOptional(a.VoteAverage, b.VoteAverage) },
	"vote_count":   func(a, b Movie) int { return compareOptional(a.VoteCount, b.VoteCount) },
	"release_date": func(a, b Movie) int { return cmp.Compare(a.ReleaseDate, b.ReleaseDate) },
	"poster_path":  func(a, b Movie) int { return cmp.Compare(a.PosterPath, b.PosterPath) },
	"overview":     func(a, b Movie) int { return cmp.Compare(a.Overview, b.Overview) },
	"budget":       func(a, b Movie) int { return compareOptional(a.Budget, b.Budget) },
	"revenue":      func(a, b Movie) int { return compareOptional(a.Revenue, b.Revenue) },
	"runtime":      func(a, b Movie) int { return cmp.Compare(a.Runtime, b.Runtime) },
}

var sortFieldAliases = map[string]string{
	"voteAverage": "vote_average",
	"voteCount":   "vote_count",
	"releaseDate": "release_date",
	"posterPath":  "poster_path",
	"posterUrl":   "poster_path",
}

// SortFields lists the field names accepted by Filter.SortBy, aliases excluded.
func SortFields() []string {
	names := make([]string, 0, len(sortFields))
	for name := range sortFields {
		names = append(names, name)
	}
	return names
}

func comparatorFor(field string) (comparator, bool) {
	if alias, ok := sortFieldAliases[field]; ok {
		field = alias
	}
	c, ok := sortFields[field]
	return c, ok
}

// compareOptional orders an absent value before any present one.
func compareOptional[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}
