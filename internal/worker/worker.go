package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dailynews/internal/domain"
	"dailynews/internal/usecase"

	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Second

// NewsSource определяет то, что воркеру нужно от NewsFetcher:
// смену даты и один снимок ленты для дайджеста.
type NewsSource interface {
	SetDate(day, month, year int) error
	Snapshot(ctx context.Context) usecase.Result[domain.NewsItem]
}

// Digest — сводка по ленте за день.
type Digest struct {
	Date        domain.DateContext
	Items       int
	TopSources  []domain.SourceCount
	TopTopics   []domain.TopicCount
	FetchFailed bool
}

// Worker по расписанию cron переводит контекст даты на текущий день
// и пишет в лог дайджест свежей ленты.
type Worker struct {
	cron       *cron.Cron
	news       NewsSource
	loc        *time.Location
	digestSize int
	log        *slog.Logger
	now        func() time.Time
	ctx        context.Context
	cancel     context.CancelFunc
}

type Option func(*Worker)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) { w.now = now }
}

// New создает воркер с расписанием spec в стандартном формате cron.
// loc задает часовой пояс и для расписания, и для вычисления «сегодня».
func New(news NewsSource, spec string, loc *time.Location, digestSize int, log *slog.Logger, opts ...Option) (*Worker, error) {
	if loc == nil {
		loc = time.UTC
	}
	w := &Worker{
		cron:       cron.New(cron.WithLocation(loc)),
		news:       news,
		loc:        loc,
		digestSize: digestSize,
		log:        log.With(slog.String("component", "worker")),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	if _, err := w.cron.AddFunc(spec, w.scheduled); err != nil {
		w.cancel()
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return w, nil
}

// Start запускает планировщик в фоне.
func (w *Worker) Start() {
	w.log.Info("Date roll worker started",
		slog.Int("digest_size", w.digestSize),
		slog.String("timezone", w.loc.String()),
	)
	w.cron.Start()
}

// Stop отменяет текущий прогон и ждет его завершения.
func (w *Worker) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
	w.log.Info("Worker stopped")
}

func (w *Worker) scheduled() {
	ctx, cancel := context.WithTimeout(w.ctx, runTimeout)
	defer cancel()
	_, _ = w.RunOnce(ctx)
}

// RunOnce выставляет сегодняшнюю дату, загружает ленту один раз и строит дайджест.
// Неудачная загрузка не считается ошибкой расписания: дайджест помечается
// FetchFailed, а ошибка возвращается для вызывающего.
func (w *Worker) RunOnce(ctx context.Context) (Digest, error) {
	const op = "worker.RunOnce"
	log := w.log.With(slog.String("op", op))
	start := time.Now()

	today, err := domain.DateContextFor(w.now().In(w.loc))
	if err != nil {
		log.Error("Failed to compute today's date", slog.Any("error", err))
		return Digest{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := w.news.SetDate(today.Day(), today.Month(), today.Year()); err != nil {
		log.Error("Failed to roll date", slog.String("date", today.String()), slog.Any("error", err))
		return Digest{}, fmt.Errorf("%s: %w", op, err)
	}

	res := w.news.Snapshot(ctx)
	if res.Failed() {
		log.Warn("Digest skipped, feed unavailable",
			slog.String("date", today.String()),
			slog.Any("error", res.Err),
		)
		return Digest{Date: today, FetchFailed: true}, res.Err
	}

	snap := usecase.Snapshot(res.Items)
	digest := Digest{
		Date:       today,
		Items:      len(snap),
		TopSources: snap.TopSources(w.digestSize),
		TopTopics:  snap.TopTopics(w.digestSize),
	}
	log.Info("Daily digest",
		slog.String("date", today.String()),
		slog.Int("items", digest.Items),
		slog.Any("top_sources", digest.TopSources),
		slog.Any("top_topics", digest.TopTopics),
		slog.Duration("duration", time.Since(start)),
	)
	return digest, nil
}
