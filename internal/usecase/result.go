package usecase

// Result — результат запроса к ленте. Items никогда не nil: при неудачной
// загрузке это пустой срез, а Err оборачивает domain.ErrFetchFailed.
// Так вызывающий может отличить «ничего не нашлось» от «лента недоступна».
type Result[T any] struct {
	Items []T
	Err   error
}

// Failed сообщает, что лента не была загружена.
func (r Result[T]) Failed() bool { return r.Err != nil }

func succeeded[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Items: []T{}, Err: err}
}
