package scheduling

import "errors"

var (
	// ErrInvalidSlotDuration возвращается при неположительной длительности слота
	ErrInvalidSlotDuration = errors.New("scheduling: slot duration must be positive")

	// ErrNilLocation возвращается, если валидатору не передана таймзона.
	// Зона планирования всегда задается явно, локаль хоста не используется.
	ErrNilLocation = errors.New("scheduling: timezone location is required")
)
