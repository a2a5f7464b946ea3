package constraints

import "github.com/sunstate-driving/scheduling-service/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов к базе данных
type DBExecutor = dbmetrics.DBExecutor
