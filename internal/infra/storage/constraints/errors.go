package constraints

import "errors"

var (
	// ErrConstraintsNotFound настройки планирования еще не сохранялись
	ErrConstraintsNotFound = errors.New("constraints.repository: constraints not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("constraints.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("constraints.repository: failed to execute query")
	// ErrScanRow ошибка чтения строки результата
	ErrScanRow = errors.New("constraints.repository: failed to scan row")
)
