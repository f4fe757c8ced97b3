package domain

import (
	"fmt"
	"strings"
	"time"
)

// Author описывает автора публикации.
type Author struct {
	Name string `json:"name"`
}

// Image содержит ссылку на иллюстрацию к новости.
type Image struct {
	URL string `json:"url"`
}

// Item представляет полезную нагрузку новости из дневной ленты.
type Item struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
	Categories  []string `json:"categories"`
	Source      string   `json:"source"`
	Authors     []Author `json:"authors"`
	Image       Image    `json:"image"`
	Published   string   `json:"published"`
}

// NewsItem представляет отдельную запись ленты: уникальный хеш и саму новость.
type NewsItem struct {
	Hash string `json:"hash"`
	Item Item   `json:"item"`
}

// SourceCount — количество статей одного источника.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// TopicCount — частота категории в ленте.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// PublishedAt разбирает поле published в абсолютный момент времени.
// Значения без зоны считаются UTC.
func (n NewsItem) PublishedAt() (time.Time, error) {
	return ParsePublished(n.Item.Published)
}

// ParsePublished перебирает известные форматы ISO-8601 и RFC1123.
func ParsePublished(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse published time in any known format: %q", s)
}
