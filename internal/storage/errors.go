// Package storage определяет ошибки слоя хранения, по которым
// HTTP-обработчики выбирают каллер-видимый исход запроса.
package storage

import "errors"

var (
	// ErrNotFound запись не существует либо недоступна вызывающему.
	// Чужая подписка неотличима от несуществующей.
	ErrNotFound = errors.New("entry not found")

	// ErrAlreadyExists нарушена уникальность (имя категории или компании).
	ErrAlreadyExists = errors.New("entry already exists")

	// ErrReferenceMissing ссылка на несуществующую запись
	// (категория у компании, компания у подписки).
	ErrReferenceMissing = errors.New("referenced entry does not exist")
)
