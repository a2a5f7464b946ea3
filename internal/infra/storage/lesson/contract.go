package lesson

import (
	"github.com/sunstate-driving/scheduling-service/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД:
// репозиторий одинаково работает с *sql.DB, dbmetrics.DB и транзакцией из контекста
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
