package httpserver_test

import (
	"context"
	"encoding/json"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{}
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) FindAll(ctx context.Context, f movie.Filter) (movie.Page, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) FindOne(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id int64, p movie.Patch) (movie.Movie, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

// newMovieServer returns a fresh server per call so the rate limiter never
// trips across subtests.
func newMovieServer(t *testing.T) (*httpserver.Server, *MockMovieService) {
	t.Helper()
	svc := new(MockMovieService)
	t.Cleanup(func() { svc.AssertExpectations(t) })
	server := httpserver.Default(testConfig())
	server.MovieService = svc
	return server, svc
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), "response should be an API envelope")
	return resp
}

func decodeAPIResult(t *testing.T, result interface{}, dest interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
