package dynamodb

import (
	"cmp"
	"context"
	"fmt"
	"moviecatalog/movie"
	"reflect"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// DynamoDB rejects batch writes with more than 25 requests.
	maxBatchWrite      = 25
	maxUnprocessedRuns = 5
)

// API is the subset of the DynamoDB client used by MovieRepository.
type API interface {
	dynamodb.ScanAPIClient
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// MovieRepository stores one item per movie keyed by the numeric id.
type MovieRepository struct {
	client API
	table  string
}

type movieItem struct {
	ID          int64    `dynamodbav:"id"`
	Position    int      `dynamodbav:"position"`
	Title       string   `dynamodbav:"title"`
	Tagline     string   `dynamodbav:"tagline,omitempty"`
	VoteAverage *float64 `dynamodbav:"vote_average,omitempty"`
	VoteCount   *int64   `dynamodbav:"vote_count,omitempty"`
	ReleaseDate string   `dynamodbav:"release_date"`
	PosterPath  string   `dynamodbav:"poster_path"`
	Overview    string   `dynamodbav:"overview"`
	Budget      *int64   `dynamodbav:"budget,omitempty"`
	Revenue     *int64   `dynamodbav:"revenue,omitempty"`
	Runtime     int      `dynamodbav:"runtime"`
	Genres      []string `dynamodbav:"genres"`
}

func NewMovieRepository(client API, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

func (r *MovieRepository) LoadAll(ctx context.Context) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	items, err := r.scanItems(ctx)
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(items))
	for i, item := range items {
		movies[i] = item.toMovie()
	}
	return movies, nil
}

// SaveAll writes only the difference between movies and the table: new or
// changed items are put, items whose id is gone are deleted. Positions need
// only increase along movies, so untouched items keep theirs and a single
// create, update or delete costs one write request.
func (r *MovieRepository) SaveAll(ctx context.Context, movies []movie.Movie) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	existing, err := r.scanItems(ctx)
	if err != nil {
		return err
	}
	stored := make(map[int64]movieItem, len(existing))
	for _, item := range existing {
		stored[item.ID] = item
	}

	var requests []types.WriteRequest
	keep := make(map[int64]struct{}, len(movies))
	last := -1
	for _, m := range movies {
		keep[m.ID] = struct{}{}

		prev, ok := stored[m.ID]
		if ok && prev.Position > last {
			last = prev.Position
			if reflect.DeepEqual(prev.toMovie(), newMovieItem(last, m).toMovie()) {
				continue
			}
		} else {
			last++
		}

		av, err := attributevalue.MarshalMap(newMovieItem(last, m))
		if err != nil {
			return fmt.Errorf("dynamodb: marshal movie %d: %w", m.ID, err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}
	for _, item := range existing {
		if _, ok := keep[item.ID]; ok {
			continue
		}
		requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: idKey(item.ID),
		}})
	}

	for batch := range slices.Chunk(requests, maxBatchWrite) {
		if err := r.writeBatch(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

// scanItems reads the whole table ordered by position, then id.
func (r *MovieRepository) scanItems(ctx context.Context) ([]movieItem, error) {
	var items []movieItem
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:      &r.table,
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	slices.SortFunc(items, func(a, b movieItem) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return items, nil
}

func (r *MovieRepository) writeBatch(ctx context.Context, batch []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{r.table: batch}
	for run := 0; len(pending[r.table]) > 0; run++ {
		if run == maxUnprocessedRuns {
			return fmt.Errorf("dynamodb: %d movie writes left unprocessed", len(pending[r.table]))
		}
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("dynamodb: batch write movies: %w", err)
		}
		pending = out.UnprocessedItems
	}
	return nil
}

func idKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

func newMovieItem(position int, m movie.Movie) movieItem {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return movieItem{
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

func (item movieItem) toMovie() movie.Movie {
	genres := item.Genres
	if genres == nil {
		genres = []string{}
	}
	return movie.Movie{
		ID:          item.ID,
		Title:       item.Title,
		Tagline:     item.Tagline,
		VoteAverage: item.VoteAverage,
		VoteCount:   item.VoteCount,
		ReleaseDate: item.ReleaseDate,
		PosterPath:  item.PosterPath,
		Overview:    item.Overview,
		Budget:      item.Budget,
		Revenue:     item.Revenue,
		Runtime:     item.Runtime,
		Genres:      genres,
	}
}
