package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dailynews/internal/domain"
)

type JSONParser struct {
	log *slog.Logger
}

func NewJSONParser(log *slog.Logger) *JSONParser {
	return &JSONParser{
		log: log.With(slog.String("component", "parser")),
	}
}

// Parse реализует метод интерфейса FeedParser.
// Ожидает ровно один JSON-массив записей; данные после него считаются ошибкой.
// Форма отдельных записей не проверяется.
func (p *JSONParser) Parse(ctx context.Context, reader io.Reader) ([]domain.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var items []domain.NewsItem
	dec := json.NewDecoder(reader)
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode JSON: unexpected data after array")
	}
	if items == nil {
		items = []domain.NewsItem{}
	}
	unparsable := 0
	for _, it := range items {
		if _, err := it.PublishedAt(); err != nil {
			unparsable++
		}
	}
	if unparsable > 0 {
		p.log.Warn("items with unparsable published time",
			slog.Int("count", unparsable),
			slog.Int("total", len(items)),
		)
	}
	return items, nil
}
