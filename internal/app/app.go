package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"dailynews/internal/adapter/fetcher"
	"dailynews/internal/adapter/parser"
	"dailynews/internal/config"
	"dailynews/internal/logger"
	"dailynews/internal/metrics"
	server "dailynews/internal/transport/http"
	"dailynews/internal/usecase"
	"dailynews/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// App связывает компоненты сервиса дневной ленты: NewsFetcher, HTTP API,
// воркер смены даты и логирование. Отвечает за запуск и graceful shutdown.
type App struct {
	config      *config.Config
	logger      *slog.Logger
	closeLogger func() error
	news        *usecase.NewsFetcher
	server      *http.Server
	worker      *worker.Worker
	stopChan    chan os.Signal
	wg          sync.WaitGroup
}

// New создает приложение по конфигурации. Начальная дата берется из feed.*
// или вычисляется как сегодняшний день в feed.timezone.
func New(cfg *config.Config) (*App, error) {
	appLogger, closeLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)

	startDate, err := cfg.Feed.StartDate(time.Now())
	if err != nil {
		closeLogger()
		return nil, fmt.Errorf("bad init app: %w", err)
	}
	loc, err := cfg.Feed.Location()
	if err != nil {
		closeLogger()
		return nil, fmt.Errorf("bad init app: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(reg)

	httpFetcher := fetcher.NewHTTPFetcher(appLogger, cfg.HTTPClient.Timeout)
	jsonParser := parser.NewJSONParser(appLogger)

	news, err := usecase.NewNewsFetcher(
		cfg.Feed.BaseURL,
		startDate.Day(), startDate.Month(), startDate.Year(),
		httpFetcher,
		jsonParser,
		appLogger,
		usecase.WithRecorder(appMetrics),
	)
	if err != nil {
		closeLogger()
		return nil, fmt.Errorf("failed to create news fetcher: %w", err)
	}

	handler := server.NewHandler(appLogger, news, server.Limits{
		DefaultLatest:     cfg.App.DefaultLatestLimit,
		DefaultTopSources: cfg.App.DefaultTopSourcesLimit,
		DefaultTopTopics:  cfg.App.DefaultTopTopicsLimit,
		Max:               cfg.App.MaxLimit,
	})
	router := server.NewServer(handler, server.Options{
		Logger:  appLogger,
		Timeout: cfg.Server.RequestTimeout,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	var w *worker.Worker
	if !cfg.Worker.Disabled {
		w, err = worker.New(news, cfg.Worker.CronSpec, loc, cfg.Worker.DigestSize, appLogger)
		if err != nil {
			closeLogger()
			return nil, fmt.Errorf("bad init app: %w", err)
		}
	}

	return &App{
		config:      cfg,
		logger:      appLogger,
		closeLogger: closeLogger,
		news:        news,
		server: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		worker:   w,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает воркер и HTTP-сервер и блокируется до сигнала завершения
// или падения сервера.
func (a *App) Run() error {
	a.logger.Info("Starting daily news service",
		slog.String("component", "app"),
		slog.String("env", a.config.Env),
		slog.String("date", a.news.Date().String()),
		slog.String("url", a.news.URL()),
		slog.Bool("worker_enabled", a.worker != nil),
	)
	if a.worker != nil {
		a.worker.Start()
	}

	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		a.Shutdown()
		return fmt.Errorf("failed to create listener: %w", err)
	}
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)

	serverErr := make(chan error, 1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server failed",
				slog.String("component", "server"),
				slog.Any("error", err),
			)
			serverErr <- err
		}
	}()

	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(a.stopChan)

	var runErr error
	select {
	case sig := <-a.stopChan:
		a.logger.Info("Shutdown signal received",
			slog.String("component", "app"),
			slog.String("signal", sig.String()),
		)
	case runErr = <-serverErr:
	}
	return errors.Join(runErr, a.Shutdown())
}

// Shutdown останавливает воркер, затем HTTP-сервер с таймаутом и закрывает
// файлы логов.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown", slog.String("component", "app"))
	if a.worker != nil {
		a.worker.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed",
			slog.String("component", "server"),
			slog.Any("error", err),
		)
		errs = append(errs, err)
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully", slog.String("component", "app"))
	if err := a.closeLogger(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
