package constraints

import "errors"

var (
	// ErrInvalidConstraints возвращается, когда обновление нарушает инварианты конфигурации
	ErrInvalidConstraints = errors.New("invalid scheduling constraints")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
