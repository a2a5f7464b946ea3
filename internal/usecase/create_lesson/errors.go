package create_lesson

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidConfiguration возвращается, когда сохраненные настройки
	// планирования не проходят собственную валидацию. Это ошибка
	// администратора, а не клиента.
	ErrInvalidConfiguration = errors.New("invalid scheduling configuration")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")

	// errLessonRejected прерывает транзакцию, когда перепроверка лимитов
	// внутри нее нашла нарушение. Наружу не отдается: результат валидации
	// возвращается в Response.
	errLessonRejected = errors.New("lesson rejected by scheduling constraints")
)
