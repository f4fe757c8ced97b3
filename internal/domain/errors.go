package domain

import "errors"

var (
	// ErrInvalidArgument — некорректные значения даты при создании или смене контекста.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFetchFailed — лента не загружена: сеть, HTTP-статус или разбор JSON.
	// Запросы не возвращают её как ошибку, а помечают ею пустой результат.
	ErrFetchFailed = errors.New("fetch failed")
)
