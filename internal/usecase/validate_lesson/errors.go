package validate_lesson

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidConfiguration возвращается при некорректных настройках планирования
	ErrInvalidConfiguration = errors.New("invalid scheduling configuration")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
