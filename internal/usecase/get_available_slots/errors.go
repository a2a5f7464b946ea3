package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDateInPast возвращается при запросе слотов на прошедший день
	ErrDateInPast = errors.New("date is in the past")

	// ErrDateTooFar возвращается, когда день за пределами окна бронирования
	ErrDateTooFar = errors.New("date is beyond the advance booking window")

	// ErrInvalidConfiguration возвращается при некорректных настройках планирования
	ErrInvalidConfiguration = errors.New("invalid scheduling configuration")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
