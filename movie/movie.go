package movie

import (
	"errors"
	"moviecatalog/errs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound    = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrDuplicateID = errors.New("movie: duplicate id in persisted records")

	// ErrPersistence is the cause of every error returned when the
	// repository cannot load or save the record set.
	ErrPersistence = errors.New("movie: persistence failure")
)

var validate = newValidator()

// Movie is a single catalog record. Optional numeric fields are pointers so
// that an absent value survives a load/save round trip.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Tagline     string   `json:"tagline,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty" validate:"omitempty,min=0"`
	VoteCount   *int64   `json:"vote_count,omitempty" validate:"omitempty,min=0"`
	ReleaseDate string   `json:"release_date" validate:"required,datetime=2006-01-02"`
	PosterPath  string   `json:"poster_path" validate:"required,url"`
	Overview    string   `json:"overview" validate:"required"`
	Budget      *int64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	Revenue     *int64   `json:"revenue,omitempty" validate:"omitempty,min=0"`
	Runtime     int      `json:"runtime" validate:"min=0"`
	Genres      []string `json:"genres" validate:"required,dive,required"`
}

// Validate checks m against the record schema. The returned error is an
// *errs.Error with code EINVALID whose Fields map json field names to the
// rule they failed.
func (m Movie) Validate() error {
	if err := validate.Struct(m); err != nil {
		return validationError(err)
	}
	return nil
}

// ValidatePatch checks only the fields p sets, as merged into m. Fields the
// patch leaves alone are not re-checked, so records loaded from storage that
// predate the schema stay updatable.
func (m Movie) ValidatePatch(p Patch) error {
	fields := p.fields()
	if len(fields) == 0 {
		return nil
	}
	if err := validate.StructPartial(m, fields...); err != nil {
		return validationError(err)
	}
	return nil
}

// Merge returns a copy of m with every non-nil field of p applied. The id
// is never touched.
func (m Movie) Merge(p Patch) Movie {
	merged := m.clone()
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Tagline != nil {
		merged.Tagline = *p.Tagline
	}
	if p.VoteAverage != nil {
		merged.VoteAverage = ptr(*p.VoteAverage)
	}
	if p.VoteCount != nil {
		merged.VoteCount = ptr(*p.VoteCount)
	}
	if p.ReleaseDate != nil {
		merged.ReleaseDate = *p.ReleaseDate
	}
	if p.PosterPath != nil {
		merged.PosterPath = *p.PosterPath
	}
	if p.Overview != nil {
		merged.Overview = *p.Overview
	}
	if p.Budget != nil {
		merged.Budget = ptr(*p.Budget)
	}
	if p.Revenue != nil {
		merged.Revenue = ptr(*p.Revenue)
	}
	if p.Runtime != nil {
		merged.Runtime = *p.Runtime
	}
	if p.Genres != nil {
		merged.Genres = cloneStrings(*p.Genres)
	}
	return merged
}

// clone returns a deep copy so callers never share genre slices or optional
// values with the store.
func (m Movie) clone() Movie {
	c := m
	c.VoteAverage = clonePtr(m.VoteAverage)
	c.VoteCount = clonePtr(m.VoteCount)
	c.Budget = clonePtr(m.Budget)
	c.Revenue = clonePtr(m.Revenue)
	c.Genres = cloneStrings(m.Genres)
	return c
}

// Patch carries a partial update. A nil field is left untouched by Merge.
type Patch struct {
	Title       *string
	Tagline     *string
	VoteAverage *float64
	VoteCount   *int64
	ReleaseDate *string
	PosterPath  *string
	Overview    *string
	Budget      *int64
	Revenue     *int64
	Runtime     *int
	Genres      *[]string
}

// fields lists the Movie field names p sets. Patch mirrors Movie field names.
func (p Patch) fields() []string {
	v := reflect.ValueOf(p)
	names := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).IsNil() {
			names = append(names, v.Type().Field(i).Name)
		}
	}
	return names
}

// IsPersistence reports whether err came from a failed repository load or save.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsValidation reports whether err is a schema validation failure.
func IsValidation(err error) bool {
	return errs.ErrorCode(err) == errs.EINVALID && errs.ErrorFields(err) != nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Errorf(errs.EINVALID, "validation error")
	}

	fields := make(map[string]string, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		fields[field] = fe.Tag()
		parts = append(parts, field+" failed on "+fe.Tag())
	}

	return &errs.Error{
		Code:    errs.EINVALID,
		Message: "validation error: " + strings.Join(parts, "; "),
		Fields:  fields,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr(*p)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
