package usecase

import (
	"slices"
	"strings"
	"time"

	"dailynews/internal/domain"
)

// Snapshot — лента, загруженная одним запросом. Все методы чистые: не изменяют
// снимок и не обращаются к сети, поэтому один снимок можно переиспользовать
// для нескольких запросов подряд.
type Snapshot []domain.NewsItem

// Sources возвращает различные источники в порядке первого появления.
func (s Snapshot) Sources() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, n := range s {
		if _, ok := seen[n.Item.Source]; ok {
			continue
		}
		seen[n.Item.Source] = struct{}{}
		out = append(out, n.Item.Source)
	}
	return out
}

// Topics возвращает категории по убыванию частоты. При равной частоте
// сохраняется порядок первого появления.
func (s Snapshot) Topics() []domain.TopicCount {
	index := make(map[string]int)
	out := make([]domain.TopicCount, 0)
	for _, n := range s {
		for _, c := range n.Item.Categories {
			if i, ok := index[c]; ok {
				out[i].Count++
				continue
			}
			index[c] = len(out)
			out = append(out, domain.TopicCount{Topic: c, Count: 1})
		}
	}
	slices.SortStableFunc(out, func(a, b domain.TopicCount) int {
		return b.Count - a.Count
	})
	return out
}

// TopicNames — Topics без счетчиков.
func (s Snapshot) TopicNames() []string {
	topics := s.Topics()
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.Topic)
	}
	return out
}

// WithTopic отбирает новости, у которых есть категория, равная category без учета регистра.
func (s Snapshot) WithTopic(category string) []domain.NewsItem {
	want := strings.ToLower(category)
	return s.filter(func(n domain.NewsItem) bool {
		return hasCategory(n, want)
	})
}

// FromSource отбирает новости источника source без учета регистра.
func (s Snapshot) FromSource(source string) []domain.NewsItem {
	want := strings.ToLower(source)
	return s.filter(func(n domain.NewsItem) bool {
		return strings.ToLower(n.Item.Source) == want
	})
}

// SearchKeyword ищет подстроку в заголовке или описании без учета регистра.
func (s Snapshot) SearchKeyword(keyword string) []domain.NewsItem {
	want := strings.ToLower(keyword)
	return s.filter(func(n domain.NewsItem) bool {
		return strings.Contains(strings.ToLower(n.Item.Title), want) ||
			strings.Contains(strings.ToLower(n.Item.Description), want)
	})
}

// ByAuthor отбирает новости, где имя хотя бы одного автора содержит name.
func (s Snapshot) ByAuthor(name string) []domain.NewsItem {
	want := strings.ToLower(name)
	return s.filter(func(n domain.NewsItem) bool {
		for _, a := range n.Item.Authors {
			if strings.Contains(strings.ToLower(a.Name), want) {
				return true
			}
		}
		return false
	})
}

// Latest возвращает limit самых свежих новостей. Записи с неразбираемой
// датой публикации уходят в конец.
func (s Snapshot) Latest(limit int) []domain.NewsItem {
	type dated struct {
		item domain.NewsItem
		at   time.Time
		ok   bool
	}
	all := make([]dated, 0, len(s))
	for _, n := range s {
		at, err := n.PublishedAt()
		all = append(all, dated{item: n, at: at, ok: err == nil})
	}
	slices.SortStableFunc(all, func(a, b dated) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		}
		return b.at.Compare(a.at)
	})
	if limit < 0 {
		limit = 0
	}
	if limit > len(all) {
		limit = len(all)
	}
	out := make([]domain.NewsItem, 0, limit)
	for _, d := range all[:limit] {
		out = append(out, d.item)
	}
	return out
}

// InDateRange отбирает новости с start <= published <= end.
// Записи без разбираемой даты не попадают в результат.
func (s Snapshot) InDateRange(start, end time.Time) []domain.NewsItem {
	return s.filter(func(n domain.NewsItem) bool {
		at, err := n.PublishedAt()
		if err != nil {
			return false
		}
		return !at.Before(start) && !at.After(end)
	})
}

// WithAllCategories отбирает новости, содержащие каждую из categories.
// Пустой список подходит любой новости.
func (s Snapshot) WithAllCategories(categories []string) []domain.NewsItem {
	want := make([]string, 0, len(categories))
	for _, c := range categories {
		want = append(want, strings.ToLower(c))
	}
	return s.filter(func(n domain.NewsItem) bool {
		for _, c := range want {
			if !hasCategory(n, c) {
				return false
			}
		}
		return true
	})
}

// TopSources считает статьи по источникам и возвращает limit самых крупных.
// При равенстве сохраняется порядок первого появления источника.
func (s Snapshot) TopSources(limit int) []domain.SourceCount {
	index := make(map[string]int)
	counts := make([]domain.SourceCount, 0)
	for _, n := range s {
		if i, ok := index[n.Item.Source]; ok {
			counts[i].Count++
			continue
		}
		index[n.Item.Source] = len(counts)
		counts = append(counts, domain.SourceCount{Source: n.Item.Source, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b domain.SourceCount) int {
		return b.Count - a.Count
	})
	return head(counts, limit)
}

// TopTopics — первые limit элементов Topics.
func (s Snapshot) TopTopics(limit int) []domain.TopicCount {
	return head(s.Topics(), limit)
}

func (s Snapshot) filter(keep func(domain.NewsItem) bool) []domain.NewsItem {
	out := make([]domain.NewsItem, 0)
	for _, n := range s {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// hasCategory сравнивает категории с want, который уже приведен к нижнему регистру.
func hasCategory(n domain.NewsItem, want string) bool {
	for _, c := range n.Item.Categories {
		if strings.ToLower(c) == want {
			return true
		}
	}
	return false
}

func head[T any](s []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if limit < len(s) {
		return s[:limit]
	}
	return s
}
