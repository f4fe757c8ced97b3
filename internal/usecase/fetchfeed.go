package usecase

import (
	"context"
	"io"
	"time"

	"dailynews/internal/domain"
)

//go:generate mockgen -source=fetchfeed.go -destination=../../mocks/mock_usecase.go -package=mocks

// FeedFetcher определяет интерфейс загрузки дневной ленты по URL.
// Возвращает io.ReadCloser, который должен быть закрыт после использования.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser преобразует тело ответа в набор записей ленты.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) ([]domain.NewsItem, error)
}

// FetchRecorder принимает сведения о загрузках и запросах для метрик.
type FetchRecorder interface {
	ObserveFetch(ok bool, d time.Duration, items int)
	IncQuery(op string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(bool, time.Duration, int) {}
func (nopRecorder) IncQuery(string) {}
