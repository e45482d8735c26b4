package movie

import "context"

type Service interface {
	FindAll(ctx context.Context, f Filter) (Page, error)
	FindOne(ctx context.Context, id int64) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id int64, p Patch) (Movie, error)
	Delete(ctx context.Context, id int64) (Movie, error)
}

// Usecase serves queries from store snapshots and forwards mutations to the
// store. Absent records are reported as ErrNotFound.
type Usecase struct {
	s *Store
}

func NewUsecase(s *Store) *Usecase {
	return &Usecase{s: s}
}

func (uc *Usecase) FindAll(_ context.Context, f Filter) (Page, error) {
	if err := f.Validate(); err != nil {
		return Page{}, err
	}
	return Apply(uc.s.Snapshot(), f), nil
}

func (uc *Usecase) FindOne(_ context.Context, id int64) (Movie, error) {
	m, ok := uc.s.FindByID(id)
	if !ok {
		return Movie{}, ErrNotFound
	}
	return m, nil
}

func (uc *Usecase) Create(ctx context.Context, m Movie) (Movie, error) {
	return uc.s.Create(ctx, m)
}

func (uc *Usecase) Update(ctx context.Context, id int64, p Patch) (Movie, error) {
	return uc.s.Update(ctx, id, p)
}

func (uc *Usecase) Delete(ctx context.Context, id int64) (Movie, error) {
	m, ok, err := uc.s.Delete(ctx, id)
	if err != nil {
		return Movie{}, err
	}
	if !ok {
		return Movie{}, ErrNotFound
	}
	return m, nil
}
