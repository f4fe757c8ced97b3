package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dailynews/internal/domain"
	"dailynews/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type newsService interface {
	Date() domain.DateContext
	URL() string
	SetDate(day, month, year int) error
	AllSources(ctx context.Context) usecase.Result[string]
	AllTopics(ctx context.Context) usecase.Result[string]
	TopTopics(ctx context.Context, limit int) usecase.Result[domain.TopicCount]
	NewsWithTopic(ctx context.Context, category string) usecase.Result[domain.NewsItem]
	NewsFromSource(ctx context.Context, source string) usecase.Result[domain.NewsItem]
	SearchByKeyword(ctx context.Context, keyword string) usecase.Result[domain.NewsItem]
	NewsByAuthor(ctx context.Context, authorName string) usecase.Result[domain.NewsItem]
	LatestNews(ctx context.Context, limit int) usecase.Result[domain.NewsItem]
	NewsInDateRange(ctx context.Context, start, end time.Time) usecase.Result[domain.NewsItem]
	NewsWithAllCategories(ctx context.Context, categories []string) usecase.Result[domain.NewsItem]
	TopSourcesByArticleCount(ctx context.Context, limit int) usecase.Result[domain.SourceCount]
}

// Limits — лимиты выдачи: значения по умолчанию и верхняя граница.
type Limits struct {
	DefaultLatest     int
	DefaultTopSources int
	DefaultTopTopics  int
	Max               int
}

type Handler struct {
	log    *slog.Logger
	news   newsService
	limits Limits
}

func NewHandler(log *slog.Logger, news newsService, limits Limits) *Handler {
	return &Handler{
		log:    log.With(slog.String("component", "http")),
		news:   news,
		limits: limits,
	}
}

type envelope struct {
	Data        any  `json:"data"`
	FetchFailed bool `json:"fetch_failed"`
}

type dateDTO struct {
	Date  int `json:"date"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type dateResponse struct {
	dateDTO
	URL string `json:"url"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getDate(w http.ResponseWriter, r *http.Request) {
	d := h.news.Date()
	respondWithJSON(w, http.StatusOK, dateResponse{
		dateDTO: dateDTO{Date: d.Day(), Month: d.Month(), Year: d.Year()},
		URL:     h.news.URL(),
	})
}

// setDate - хендлер PUT /api/date
func (h *Handler) setDate(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/setDate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	var req dateDTO
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Warn("invalid request body", slog.Any("error", err))
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.news.SetDate(req.Date, req.Month, req.Year); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			respondWithError(w, http.StatusBadRequest, strings.SplitN(err.Error(), ":", 2)[0])
			return
		}
		log.Error("Failed to set date", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	h.getDate(w, r)
}

func (h *Handler) allSources(w http.ResponseWriter, r *http.Request) {
	respondResult(h, w, r, h.news.AllSources(r.Context()))
}

func (h *Handler) allTopics(w http.ResponseWriter, r *http.Request) {
	respondResult(h, w, r, h.news.AllTopics(r.Context()))
}

func (h *Handler) topSources(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r, h.limits.DefaultTopSources)
	if !ok {
		return
	}
	respondResult(h, w, r, h.news.TopSourcesByArticleCount(r.Context(), limit))
}

func (h *Handler) topTopics(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r, h.limits.DefaultTopTopics)
	if !ok {
		return
	}
	respondResult(h, w, r, h.news.TopTopics(r.Context(), limit))
}

func (h *Handler) newsWithTopic(w http.ResponseWriter, r *http.Request) {
	respondResult(h, w, r, h.news.NewsWithTopic(r.Context(), chi.URLParam(r, "topic")))
}

func (h *Handler) newsFromSource(w http.ResponseWriter, r *http.Request) {
	respondResult(h, w, r, h.news.NewsFromSource(r.Context(), chi.URLParam(r, "source")))
}

func (h *Handler) searchNews(w http.ResponseWriter, r *http.Request) {
	q, ok := requiredParam(w, r, "q")
	if !ok {
		return
	}
	respondResult(h, w, r, h.news.SearchByKeyword(r.Context(), q))
}

func (h *Handler) newsByAuthor(w http.ResponseWriter, r *http.Request) {
	name, ok := requiredParam(w, r, "name")
	if !ok {
		return
	}
	respondResult(h, w, r, h.news.NewsByAuthor(r.Context(), name))
}

func (h *Handler) latestNews(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limit(w, r, h.limits.DefaultLatest)
	if !ok {
		return
	}
	respondResult(h, w, r, h.news.LatestNews(r.Context(), limit))
}

func (h *Handler) newsInDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := parseTimeParam(query.Get("start"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'start' parameter")
		return
	}
	end, err := parseTimeParam(query.Get("end"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'end' parameter")
		return
	}
	if end.Before(start) {
		respondWithError(w, http.StatusBadRequest, "'start' must not be after 'end'")
		return
	}
	respondResult(h, w, r, h.news.NewsInDateRange(r.Context(), start, end))
}

func (h *Handler) newsWithCategories(w http.ResponseWriter, r *http.Request) {
	categories := r.URL.Query()["category"]
	if len(categories) == 0 {
		respondWithError(w, http.StatusBadRequest, "At least one 'category' parameter is required")
		return
	}
	respondResult(h, w, r, h.news.NewsWithAllCategories(r.Context(), categories))
}

// limit читает параметр limit: пустой — def, больше максимума — обрезается до него.
func (h *Handler) limit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return def, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		h.log.Warn("invalid limit parameter",
			slog.String("request_id", getRequestID(r.Context())),
			slog.String("limit", limitStr),
		)
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return 0, false
	}
	if h.limits.Max > 0 && limit > h.limits.Max {
		limit = h.limits.Max
	}
	return limit, true
}

// parseTimeParam разбирает время из query. Неэкранированный «+» в смещении
// зоны приходит пробелом, поэтому при неудаче пробел возвращается обратно.
func parseTimeParam(s string) (time.Time, error) {
	t, err := domain.ParsePublished(s)
	if err == nil || !strings.Contains(s, " ") {
		return t, err
	}
	return domain.ParsePublished(strings.ReplaceAll(strings.TrimSpace(s), " ", "+"))
}

func requiredParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		respondWithError(w, http.StatusBadRequest, "Missing '"+name+"' parameter")
		return "", false
	}
	return v, true
}

// respondResult отвечает 200 даже при недоступной ленте: клиент видит пустые
// данные, флаг fetch_failed и заголовок X-Feed-Status.
// Если истек дедлайн запроса, ответ не пишется: 504 отдает middleware.Timeout.
func respondResult[T any](h *Handler, w http.ResponseWriter, r *http.Request, res usecase.Result[T]) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		h.log.Warn("request deadline exceeded",
			slog.String("request_id", getRequestID(r.Context())),
			slog.String("path", r.URL.Path),
		)
		return
	}
	if res.Failed() {
		h.log.Warn("serving empty result, feed unavailable",
			slog.String("request_id", getRequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", res.Err),
		)
		w.Header().Set("X-Feed-Status", "unavailable")
	}
	respondWithJSON(w, http.StatusOK, envelope{Data: res.Items, FetchFailed: res.Failed()})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
