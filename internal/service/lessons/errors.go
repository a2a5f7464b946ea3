package lessons

import "errors"

var (
	// ErrLessonNotFound возвращается, когда урок не найден
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда урок уже отменен
	ErrCannotCancel = errors.New("lesson cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
