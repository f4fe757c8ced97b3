package domain

import (
	"fmt"
	"time"
)

const (
	minYear = 2000
	maxYear = 2100
)

// DateContext — неизменяемая тройка день/месяц/год, по которой строится URL ленты.
// Создаётся только через NewDateContext, поэтому невалидное значение получить нельзя.
type DateContext struct {
	day   int
	month int
	year  int
}

// NewDateContext проверяет границы по порядку: день, месяц, год.
// Возвращает ошибку, оборачивающую ErrInvalidArgument, на первом нарушении.
func NewDateContext(day, month, year int) (DateContext, error) {
	if day < 1 || day > 31 {
		return DateContext{}, fmt.Errorf("Invalid date: %d: %w", day, ErrInvalidArgument)
	}
	if month < 1 || month > 12 {
		return DateContext{}, fmt.Errorf("Invalid month: %d: %w", month, ErrInvalidArgument)
	}
	if year < minYear || year > maxYear {
		return DateContext{}, fmt.Errorf("Invalid year: %d: %w", year, ErrInvalidArgument)
	}
	return DateContext{day: day, month: month, year: year}, nil
}

// DateContextFor возвращает контекст для календарного дня t.
func DateContextFor(t time.Time) (DateContext, error) {
	return NewDateContext(t.Day(), int(t.Month()), t.Year())
}

func (d DateContext) Day() int   { return d.day }
func (d DateContext) Month() int { return d.month }
func (d DateContext) Year() int  { return d.year }

// MonthName возвращает английское название месяца.
func (d DateContext) MonthName() string {
	return time.Month(d.month).String()
}

// Path возвращает путь ресурса относительно базового URL:
// {MonthName}-{YYYY}/{DD}-{MM}-{YYYY}.json
func (d DateContext) Path() string {
	return fmt.Sprintf("%s-%d/%02d-%02d-%d.json", d.MonthName(), d.year, d.day, d.month, d.year)
}

func (d DateContext) String() string {
	return fmt.Sprintf("%02d-%02d-%d", d.day, d.month, d.year)
}
