package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dailynews/internal/domain"
)

const (
	// DefaultLatestLimit применяется в LatestNews при limit <= 0.
	DefaultLatestLimit = 10
	// DefaultTopSourcesLimit применяется в TopSourcesByArticleCount при limit <= 0.
	DefaultTopSourcesLimit = 5
	// DefaultTopTopicsLimit применяется в TopTopics при limit <= 0.
	DefaultTopTopicsLimit = 5
)

// NewsFetcher загружает дневную ленту по контексту даты и выполняет запросы к ней.
// Каждый запрос загружает ленту заново: между вызовами ничего не кешируется.
// Изменяемое состояние — только контекст даты, он защищен мьютексом.
type NewsFetcher struct {
	baseURL string
	fetcher FeedFetcher
	parser  FeedParser
	rec     FetchRecorder
	log     *slog.Logger

	mu   sync.RWMutex
	date domain.DateContext
}

// Option настраивает NewsFetcher.
type Option func(*NewsFetcher)

// WithRecorder подключает сбор метрик.
func WithRecorder(rec FetchRecorder) Option {
	return func(f *NewsFetcher) {
		if rec != nil {
			f.rec = rec
		}
	}
}

// NewNewsFetcher создает NewsFetcher. baseURL сохраняется как есть, дата проверяется
// теми же правилами, что и в SetDate.
func NewNewsFetcher(
	baseURL string,
	day, month, year int,
	fetcher FeedFetcher,
	parser FeedParser,
	log *slog.Logger,
	opts ...Option,
) (*NewsFetcher, error) {
	date, err := domain.NewDateContext(day, month, year)
	if err != nil {
		return nil, fmt.Errorf("bad init news fetcher: %w", err)
	}
	f := &NewsFetcher{
		baseURL: baseURL,
		fetcher: fetcher,
		parser:  parser,
		rec:     nopRecorder{},
		log:     log.With(slog.String("component", "news-fetcher")),
		date:    date,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Date возвращает текущий контекст даты.
func (f *NewsFetcher) Date() domain.DateContext {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.date
}

// SetDate заменяет контекст даты целиком. При невалидных значениях возвращает
// ошибку, оборачивающую domain.ErrInvalidArgument, и оставляет прежний контекст.
func (f *NewsFetcher) SetDate(day, month, year int) error {
	const op = "usecase.NewsFetcher.SetDate"
	date, err := domain.NewDateContext(day, month, year)
	if err != nil {
		f.log.Warn("Rejected date change",
			slog.String("op", op),
			slog.Int("date", day),
			slog.Int("month", month),
			slog.Int("year", year),
			slog.Any("error", err),
		)
		return err
	}
	f.mu.Lock()
	prev := f.date
	f.date = date
	f.mu.Unlock()
	f.log.Info("Date context changed",
		slog.String("op", op),
		slog.String("from", prev.String()),
		slog.String("to", date.String()),
	)
	return nil
}

// URL возвращает адрес ресурса для текущей даты:
// {baseURL}/{MonthName}-{YYYY}/{DD}-{MM}-{YYYY}.json
func (f *NewsFetcher) URL() string {
	return f.urlFor(f.Date())
}

func (f *NewsFetcher) urlFor(date domain.DateContext) string {
	return f.baseURL + "/" + date.Path()
}

// fetchNewsData загружает и разбирает ленту. Ошибки не возвращаются наружу:
// они логируются, учитываются в метриках и превращаются в пустой Result с Err.
func (f *NewsFetcher) fetchNewsData(ctx context.Context) Result[domain.NewsItem] {
	start := time.Now()
	date := f.Date()
	url := f.urlFor(date)
	log := f.log.With(
		slog.String("date", date.String()),
		slog.String("url", url),
	)

	reader, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		f.rec.ObserveFetch(false, time.Since(start), 0)
		return failed[domain.NewsItem](fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, date, err))
	}
	defer reader.Close()

	items, err := f.parser.Parse(ctx, reader)
	if err != nil {
		log.Error("Feed parsing failed",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		f.rec.ObserveFetch(false, time.Since(start), 0)
		return failed[domain.NewsItem](fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, date, err))
	}

	duration := time.Since(start)
	f.rec.ObserveFetch(true, duration, len(items))
	log.Debug("Feed fetched",
		slog.Int("items_found", len(items)),
		slog.Duration("duration", duration),
	)
	return succeeded(items)
}

// query загружает ленту и применяет к ней чистое преобразование. Паника в
// преобразовании тоже превращается в пустой результат.
func query[T any](ctx context.Context, f *NewsFetcher, op string, transform func(Snapshot) []T) (res Result[T]) {
	f.rec.IncQuery(op)
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("Query panicked",
				slog.String("op", op),
				slog.Any("panic", r),
			)
			res = failed[T](fmt.Errorf("%s: panic: %v", op, r))
		}
	}()
	data := f.fetchNewsData(ctx)
	if data.Failed() {
		return failed[T](data.Err)
	}
	return succeeded(transform(Snapshot(data.Items)))
}

// Snapshot загружает ленту один раз и возвращает ее целиком, чтобы выполнить
// несколько запросов над одним снимком без повторных загрузок.
func (f *NewsFetcher) Snapshot(ctx context.Context) Result[domain.NewsItem] {
	return query(ctx, f, "Snapshot", func(s Snapshot) []domain.NewsItem {
		return s
	})
}

// AllSources возвращает различные источники ленты в порядке первого появления.
func (f *NewsFetcher) AllSources(ctx context.Context) Result[string] {
	return query(ctx, f, "AllSources", Snapshot.Sources)
}

// AllTopics возвращает различные категории по убыванию частоты.
func (f *NewsFetcher) AllTopics(ctx context.Context) Result[string] {
	return query(ctx, f, "AllTopics", Snapshot.TopicNames)
}

// TopTopics возвращает limit самых частых категорий со счетчиками.
func (f *NewsFetcher) TopTopics(ctx context.Context, limit int) Result[domain.TopicCount] {
	if limit <= 0 {
		limit = DefaultTopTopicsLimit
	}
	return query(ctx, f, "TopTopics", func(s Snapshot) []domain.TopicCount {
		return s.TopTopics(limit)
	})
}

// NewsWithTopic возвращает новости с категорией category (без учета регистра).
func (f *NewsFetcher) NewsWithTopic(ctx context.Context, category string) Result[domain.NewsItem] {
	return query(ctx, f, "NewsWithTopic", func(s Snapshot) []domain.NewsItem {
		return s.WithTopic(category)
	})
}

// NewsFromSource возвращает новости источника source (без учета регистра).
func (f *NewsFetcher) NewsFromSource(ctx context.Context, source string) Result[domain.NewsItem] {
	return query(ctx, f, "NewsFromSource", func(s Snapshot) []domain.NewsItem {
		return s.FromSource(source)
	})
}

// SearchByKeyword ищет keyword в заголовках и описаниях.
func (f *NewsFetcher) SearchByKeyword(ctx context.Context, keyword string) Result[domain.NewsItem] {
	return query(ctx, f, "SearchByKeyword", func(s Snapshot) []domain.NewsItem {
		return s.SearchKeyword(keyword)
	})
}

// NewsByAuthor возвращает новости, где имя автора содержит authorName.
func (f *NewsFetcher) NewsByAuthor(ctx context.Context, authorName string) Result[domain.NewsItem] {
	return query(ctx, f, "NewsByAuthor", func(s Snapshot) []domain.NewsItem {
		return s.ByAuthor(authorName)
	})
}

// LatestNews возвращает limit самых свежих новостей; limit <= 0 означает DefaultLatestLimit.
func (f *NewsFetcher) LatestNews(ctx context.Context, limit int) Result[domain.NewsItem] {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return query(ctx, f, "LatestNews", func(s Snapshot) []domain.NewsItem {
		return s.Latest(limit)
	})
}

// NewsInDateRange возвращает новости, опубликованные в [start, end] включительно.
func (f *NewsFetcher) NewsInDateRange(ctx context.Context, start, end time.Time) Result[domain.NewsItem] {
	return query(ctx, f, "NewsInDateRange", func(s Snapshot) []domain.NewsItem {
		return s.InDateRange(start, end)
	})
}

// NewsWithAllCategories возвращает новости, содержащие все categories.
func (f *NewsFetcher) NewsWithAllCategories(ctx context.Context, categories []string) Result[domain.NewsItem] {
	return query(ctx, f, "NewsWithAllCategories", func(s Snapshot) []domain.NewsItem {
		return s.WithAllCategories(categories)
	})
}

// TopSourcesByArticleCount возвращает limit источников с наибольшим числом статей;
// limit <= 0 означает DefaultTopSourcesLimit.
func (f *NewsFetcher) TopSourcesByArticleCount(ctx context.Context, limit int) Result[domain.SourceCount] {
	if limit <= 0 {
		limit = DefaultTopSourcesLimit
	}
	return query(ctx, f, "TopSourcesByArticleCount", func(s Snapshot) []domain.SourceCount {
		return s.TopSources(limit)
	})
}
