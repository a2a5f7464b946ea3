package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelLessonHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/cancel_lesson"
	createLessonHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/create_lesson"
	getAvailableSlotsHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/get_available_slots"
	getConstraintsHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/get_constraints"
	getLessonHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/get_lesson"
	getStudentLessonsHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/get_student_lessons"
	instructorCalendarHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/instructor_calendar"
	updateConstraintsHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/update_constraints"
	validateLessonHandler "github.com/sunstate-driving/scheduling-service/internal/api/handlers/validate_lesson"
	"github.com/sunstate-driving/scheduling-service/internal/api/middleware"
	"github.com/sunstate-driving/scheduling-service/internal/config"
	constraintsRepo "github.com/sunstate-driving/scheduling-service/internal/infra/storage/constraints"
	lessonRepo "github.com/sunstate-driving/scheduling-service/internal/infra/storage/lesson"
	constraintsService "github.com/sunstate-driving/scheduling-service/internal/service/constraints"
	lessonsService "github.com/sunstate-driving/scheduling-service/internal/service/lessons"
	createLessonUC "github.com/sunstate-driving/scheduling-service/internal/usecase/create_lesson"
	getAvailableSlotsUC "github.com/sunstate-driving/scheduling-service/internal/usecase/get_available_slots"
	validateLessonUC "github.com/sunstate-driving/scheduling-service/internal/usecase/validate_lesson"
	"github.com/sunstate-driving/scheduling-service/pkg/dbmetrics"
	"github.com/sunstate-driving/scheduling-service/pkg/logger"
	"github.com/sunstate-driving/scheduling-service/pkg/metrics"
	"github.com/sunstate-driving/scheduling-service/pkg/simpletxmanager"
	"github.com/sunstate-driving/scheduling-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона школы: все wall-clock проверки считаются в ней
	loc, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", cfg.Scheduling.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		lessonRepository      *lessonRepo.Repository
		constraintsRepository *constraintsRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		lessonRepository = lessonRepo.NewRepository(wrappedDB)
		constraintsRepository = constraintsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		lessonRepository = lessonRepo.NewRepository(db)
		constraintsRepository = constraintsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	lessonsSvc := lessonsService.NewService(lessonRepository, loc, log)
	constraintsSvc := constraintsService.NewService(constraintsRepository, log)

	// Инициализируем use cases
	createLessonUseCase := createLessonUC.NewUseCase(lessonRepository, constraintsSvc, txMgr, loc, log)
	validateLessonUseCase := validateLessonUC.NewUseCase(lessonRepository, constraintsSvc, loc, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(lessonRepository, constraintsSvc, loc, log)

	// Инициализируем handlers
	createLesson := createLessonHandler.NewHandler(createLessonUseCase, log)
	validateLesson := validateLessonHandler.NewHandler(validateLessonUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	getLesson := getLessonHandler.NewHandler(lessonsSvc, log)
	cancelLesson := cancelLessonHandler.NewHandler(lessonsSvc, log)
	getStudentLessons := getStudentLessonsHandler.NewHandler(lessonsSvc, loc, log)
	getConstraints := getConstraintsHandler.NewHandler(constraintsSvc, log)
	updateConstraints := updateConstraintsHandler.NewHandler(constraintsSvc, log)
	instructorCalendar := instructorCalendarHandler.NewHandler(lessonsSvc, loc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты инструктора на день
	api.HandleFunc("/instructors/{instructorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// iCalendar фид инструктора (подписка календарных клиентов)
	api.HandleFunc("/instructors/{instructorId}/calendar.ics",
		instructorCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Уроки ---
	// Бронирование урока
	protected.HandleFunc("/lessons", createLesson.Handle).Methods(http.MethodPost)

	// Проверка бронирования без создания
	protected.HandleFunc("/lessons/validate", validateLesson.Handle).Methods(http.MethodPost)

	// Получение урока по ID
	protected.HandleFunc("/lessons/{lessonId}", getLesson.Handle).Methods(http.MethodGet)

	// Отмена урока
	protected.HandleFunc("/lessons/{lessonId}/cancel", cancelLesson.Handle).Methods(http.MethodPatch)

	// История уроков студента
	protected.HandleFunc("/students/{studentId}/lessons", getStudentLessons.Handle).Methods(http.MethodGet)

	// --- Настройки планирования (администратор) ---
	protected.HandleFunc("/scheduling/constraints", getConstraints.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/scheduling/constraints", updateConstraints.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
