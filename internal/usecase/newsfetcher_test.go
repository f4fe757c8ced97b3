package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"dailynews/internal/adapter/fetcher"
	"dailynews/internal/adapter/parser"
	"dailynews/internal/domain"
	"dailynews/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://feeds.example.com/news"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHTTPNewsFetcher поднимает httptest-сервер с обработчиком h и собирает
// NewsFetcher на реальных HTTPFetcher и JSONParser.
func newHTTPNewsFetcher(t *testing.T, h http.HandlerFunc) *NewsFetcher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := discardLogger()
	f, err := NewNewsFetcher(srv.URL, 12, 11, 2024, fetcher.NewHTTPFetcher(log, time.Second), parser.NewJSONParser(log), log)
	require.NoError(t, err)
	return f
}

func serveItems(t *testing.T, items []domain.NewsItem) http.HandlerFunc {
	t.Helper()
	body, err := json.Marshal(items)
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

func TestNewsFetcher_URL(t *testing.T) {
	f, err := NewNewsFetcher(testBaseURL, 12, 11, 2024, nil, nil, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, testBaseURL+"/November-2024/12-11-2024.json", f.URL())
}

func TestNewsFetcher_New_RejectsInvalidDate(t *testing.T) {
	f, err := NewNewsFetcher(testBaseURL, 32, 11, 2024, nil, nil, discardLogger())

	assert.Nil(t, f)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "Invalid date")
}

func TestNewsFetcher_SetDate(t *testing.T) {
	f, err := NewNewsFetcher(testBaseURL, 12, 11, 2024, nil, nil, discardLogger())
	require.NoError(t, err)

	require.NoError(t, f.SetDate(15, 6, 2023))

	assert.Equal(t, testBaseURL+"/June-2023/15-06-2023.json", f.URL())
	d := f.Date()
	assert.Equal(t, []int{15, 6, 2023}, []int{d.Day(), d.Month(), d.Year()})
}

func TestNewsFetcher_SetDate_InvalidKeepsState(t *testing.T) {
	f, err := NewNewsFetcher(testBaseURL, 12, 11, 2024, nil, nil, discardLogger())
	require.NoError(t, err)
	before := f.URL()

	tests := []struct {
		day, month, year int
		wantMsg          string
	}{
		{32, 1, 2024, "Invalid date"},
		{1, 13, 2024, "Invalid month"},
		{1, 1, 1999, "Invalid year"},
	}
	for _, tt := range tests {
		err := f.SetDate(tt.day, tt.month, tt.year)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		assert.Contains(t, err.Error(), tt.wantMsg)
		assert.Equal(t, before, f.URL())
	}
}

func TestNewsFetcher_RequestsDerivedPath(t *testing.T) {
	var gotPath atomic.Value
	f := newHTTPNewsFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.Write([]byte(`[]`))
	})
	require.NoError(t, f.SetDate(1, 2, 2025))

	res := f.AllSources(context.Background())

	require.False(t, res.Failed())
	assert.Equal(t, "/February-2025/01-02-2025.json", gotPath.Load())
}

func TestNewsFetcher_QueriesOverHTTP(t *testing.T) {
	items := []domain.NewsItem{
		{Hash: "1", Item: domain.Item{Title: "Cup final tonight", Source: "A", Categories: []string{"Sports"}, Published: "2024-11-12T08:00:00Z", Authors: []domain.Author{{Name: "Jane Roe"}}}},
		{Hash: "2", Item: domain.Item{Title: "Budget vote", Source: "B", Categories: []string{"Politics", "Economy"}, Published: "2024-11-12T09:00:00Z"}},
		{Hash: "3", Item: domain.Item{Title: "Markets rally", Description: "after the vote", Source: "b", Categories: []string{"economy"}, Published: "2024-11-12T10:00:00Z"}},
		{Hash: "4", Item: domain.Item{Title: "Transfer news", Source: "B", Categories: []string{"sports", "economy"}, Published: "2024-11-12T11:00:00Z", Authors: []domain.Author{{Name: "John Roebuck"}}}},
	}
	f := newHTTPNewsFetcher(t, serveItems(t, items))
	ctx := context.Background()

	sources := f.AllSources(ctx)
	require.NoError(t, sources.Err)
	assert.Equal(t, []string{"A", "B", "b"}, sources.Items)

	topics := f.AllTopics(ctx)
	require.NoError(t, topics.Err)
	assert.Equal(t, []string{"economy", "Sports", "Politics", "Economy", "sports"}, topics.Items)

	assert.Equal(t, []string{"1", "4"}, hashes(f.NewsWithTopic(ctx, "SPORTS").Items))
	assert.Equal(t, []string{"2", "3", "4"}, hashes(f.NewsFromSource(ctx, "b").Items))
	assert.Equal(t, []string{"2", "3"}, hashes(f.SearchByKeyword(ctx, "VOTE").Items))
	assert.Equal(t, []string{"1", "4"}, hashes(f.NewsByAuthor(ctx, "roe").Items))
	assert.Equal(t, []string{"4", "3"}, hashes(f.LatestNews(ctx, 2).Items))
	assert.Equal(t, []string{"4", "3", "2", "1"}, hashes(f.LatestNews(ctx, 0).Items))
	assert.Equal(t, []string{"2", "3"}, hashes(f.NewsInDateRange(ctx,
		time.Date(2024, 11, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 12, 10, 0, 0, 0, time.UTC),
	).Items))
	assert.Equal(t, []string{"4"}, hashes(f.NewsWithAllCategories(ctx, []string{"Sports", "Economy"}).Items))

	top := f.TopSourcesByArticleCount(ctx, 1)
	require.NoError(t, top.Err)
	assert.Equal(t, []domain.SourceCount{{Source: "B", Count: 2}}, top.Items)

	topTopics := f.TopTopics(ctx, 1)
	require.NoError(t, topTopics.Err)
	assert.Equal(t, []domain.TopicCount{{Topic: "economy", Count: 2}}, topTopics.Items)

	snap := f.Snapshot(ctx)
	require.NoError(t, snap.Err)
	assert.Len(t, snap.Items, len(items))
}

// assertAllQueriesEmpty проверяет, что каждый запрос вернул пустой помеченный результат.
func assertAllQueriesEmpty(t *testing.T, f *NewsFetcher) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	results := map[string]struct {
		n   int
		err error
	}{}
	add := func(name string, n int, err error) {
		results[name] = struct {
			n   int
			err error
		}{n, err}
	}
	r1 := f.AllSources(ctx)
	add("AllSources", len(r1.Items), r1.Err)
	r2 := f.AllTopics(ctx)
	add("AllTopics", len(r2.Items), r2.Err)
	r3 := f.NewsWithTopic(ctx, "sports")
	add("NewsWithTopic", len(r3.Items), r3.Err)
	r4 := f.NewsFromSource(ctx, "A")
	add("NewsFromSource", len(r4.Items), r4.Err)
	r5 := f.SearchByKeyword(ctx, "vote")
	add("SearchByKeyword", len(r5.Items), r5.Err)
	r6 := f.NewsByAuthor(ctx, "roe")
	add("NewsByAuthor", len(r6.Items), r6.Err)
	r7 := f.LatestNews(ctx, 10)
	add("LatestNews", len(r7.Items), r7.Err)
	r8 := f.NewsInDateRange(ctx, now.Add(-time.Hour), now)
	add("NewsInDateRange", len(r8.Items), r8.Err)
	r9 := f.NewsWithAllCategories(ctx, []string{"a", "b"})
	add("NewsWithAllCategories", len(r9.Items), r9.Err)
	r10 := f.TopSourcesByArticleCount(ctx, 5)
	add("TopSourcesByArticleCount", len(r10.Items), r10.Err)
	r11 := f.TopTopics(ctx, 5)
	add("TopTopics", len(r11.Items), r11.Err)
	r12 := f.Snapshot(ctx)
	add("Snapshot", len(r12.Items), r12.Err)

	for name, r := range results {
		assert.Zero(t, r.n, name)
		assert.True(t, errors.Is(r.err, domain.ErrFetchFailed), name)
	}
	assert.NotNil(t, r1.Items)
	assert.NotNil(t, r10.Items)
}

func TestNewsFetcher_ServerError_ReturnsEmpty(t *testing.T) {
	f := newHTTPNewsFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assertAllQueriesEmpty(t, f)
}

func TestNewsFetcher_MalformedJSON_ReturnsEmpty(t *testing.T) {
	for name, body := range map[string]string{
		"truncated":        `[{"hash": "1", "item": `,
		"junk after array": `[{"hash":"1","item":{"source":"A"}}] }{ not json`,
		"second value":     `[{"hash":"1","item":{"source":"A"}}][]`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newHTTPNewsFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			assertAllQueriesEmpty(t, f)
		})
	}
}

func TestNewsFetcher_EmptyFeedIsNotFailure(t *testing.T) {
	f := newHTTPNewsFetcher(t, serveItems(t, []domain.NewsItem{}))

	res := f.NewsWithTopic(context.Background(), "sports")

	assert.False(t, res.Failed())
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestNewsFetcher_RefetchesOnEveryQuery(t *testing.T) {
	var calls atomic.Int32
	f := newHTTPNewsFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	f.AllSources(ctx)
	f.AllSources(ctx)
	f.LatestNews(ctx, 3)

	assert.Equal(t, int32(3), calls.Load())
}

func TestNewsFetcher_FetchError_Mocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockFeedFetcher(ctrl)
	mockParser := mocks.NewMockFeedParser(ctrl)
	mockRec := mocks.NewMockFetchRecorder(ctrl)

	netErr := errors.New("connection refused")
	mockRec.EXPECT().IncQuery("AllSources")
	mockFetcher.EXPECT().
		Fetch(gomock.Any(), testBaseURL+"/November-2024/12-11-2024.json").
		Return(nil, netErr)
	mockRec.EXPECT().ObserveFetch(false, gomock.Any(), 0)

	f, err := NewNewsFetcher(testBaseURL, 12, 11, 2024, mockFetcher, mockParser, discardLogger(), WithRecorder(mockRec))
	require.NoError(t, err)

	res := f.AllSources(context.Background())

	assert.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, domain.ErrFetchFailed))
	assert.True(t, errors.Is(res.Err, netErr))
	assert.Empty(t, res.Items)
}

func TestNewsFetcher_ParseError_ClosesBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockFeedFetcher(ctrl)
	mockParser := mocks.NewMockFeedParser(ctrl)

	body := &trackingBody{Reader: strings.NewReader("garbage")}
	mockFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(body, nil)
	mockParser.EXPECT().Parse(gomock.Any(), body).Return(nil, errors.New("failed to decode JSON"))

	f, err := NewNewsFetcher(testBaseURL, 12, 11, 2024, mockFetcher, mockParser, discardLogger())
	require.NoError(t, err)

	res := f.LatestNews(context.Background(), 5)

	assert.True(t, errors.Is(res.Err, domain.ErrFetchFailed))
	assert.Empty(t, res.Items)
	assert.True(t, body.closed)
}

func TestNewsFetcher_Success_RecordsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockFeedFetcher(ctrl)
	mockParser := mocks.NewMockFeedParser(ctrl)
	mockRec := mocks.NewMockFetchRecorder(ctrl)

	items := []domain.NewsItem{
		{Hash: "1", Item: domain.Item{Source: "A"}},
		{Hash: "2", Item: domain.Item{Source: "A"}},
	}
	gomock.InOrder(
		mockRec.EXPECT().IncQuery("TopSourcesByArticleCount"),
		mockFetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(io.NopCloser(strings.NewReader("[]")), nil),
		mockParser.EXPECT().Parse(gomock.Any(), gomock.Any()).Return(items, nil),
		mockRec.EXPECT().ObserveFetch(true, gomock.Any(), 2),
	)

	f, err := NewNewsFetcher(testBaseURL, 12, 11, 2024, mockFetcher, mockParser, discardLogger(), WithRecorder(mockRec))
	require.NoError(t, err)

	res := f.TopSourcesByArticleCount(context.Background(), 0)

	require.NoError(t, res.Err)
	assert.Equal(t, []domain.SourceCount{{Source: "A", Count: 2}}, res.Items)
}

func TestNewsFetcher_ConcurrentSetDateAndQueries(t *testing.T) {
	f := newHTTPNewsFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 28; i++ {
			_ = f.SetDate(i, 2, 2024)
		}
	}()
	for i := 0; i < 10; i++ {
		res := f.AllTopics(ctx)
		assert.False(t, res.Failed())
	}
	<-done
	assert.Equal(t, "February-2024/28-02-2024.json", f.Date().Path())
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}
