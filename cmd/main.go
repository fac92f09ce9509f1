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

	bookProjectHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/book_project"
	cancelAppointmentHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/cancel_appointment"
	computeProjectAvailabilityHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/compute_project_availability"
	createAppointmentHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/get_appointment"
	getClientAppointmentsHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/get_client_appointments"
	getProviderAppointmentsHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/get_provider_appointments"
	getProviderScheduleHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/get_provider_schedule"
	updateAppointmentStatusHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/update_appointment_status"
	updateProviderScheduleHandler "github.com/inkline/INK-AvailabilityService/internal/api/handlers/update_provider_schedule"
	"github.com/inkline/INK-AvailabilityService/internal/api/middleware"
	"github.com/inkline/INK-AvailabilityService/internal/config"
	appointmentRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/appointment"
	scheduleRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
	appointmentsService "github.com/inkline/INK-AvailabilityService/internal/service/appointments"
	scheduleService "github.com/inkline/INK-AvailabilityService/internal/service/schedule"
	bookProjectUC "github.com/inkline/INK-AvailabilityService/internal/usecase/book_project"
	computeProjectAvailabilityUC "github.com/inkline/INK-AvailabilityService/internal/usecase/compute_project_availability"
	createAppointmentUC "github.com/inkline/INK-AvailabilityService/internal/usecase/create_appointment"
	"github.com/inkline/INK-AvailabilityService/pkg/dbmetrics"
	"github.com/inkline/INK-AvailabilityService/pkg/logger"
	"github.com/inkline/INK-AvailabilityService/pkg/metrics"
	"github.com/inkline/INK-AvailabilityService/pkg/simpletxmanager"
	"github.com/inkline/INK-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting INK-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	computeProjectAvailabilityUseCase := computeProjectAvailabilityUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		catalogClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		log,
	)

	bookProjectUseCase := bookProjectUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	computeProjectAvailability := computeProjectAvailabilityHandler.NewHandler(computeProjectAvailabilityUseCase, log)
	bookProject := bookProjectHandler.NewHandler(bookProjectUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProviderSchedule := getProviderScheduleHandler.NewHandler(scheduleSvc, log)
	updateProviderSchedule := updateProviderScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Подбор дат многосеансового проекта
	api.HandleFunc("/providers/{providerId}/project-availability",
		computeProjectAvailability.Handle).Methods(http.MethodGet)

	// Расписание мастера
	api.HandleFunc("/providers/{providerId}/schedule",
		getProviderSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Проекты ---
	// Фиксация многосеансового проекта по предложенным датам
	protected.HandleFunc("/projects", bookProject.Handle).Methods(http.MethodPost)

	// --- Записи ---
	// Создание разовой записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для мастера)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	// Список записей мастера
	protected.HandleFunc("/providers/{providerId}/appointments", getProviderAppointments.Handle).Methods(http.MethodGet)

	// Обновление расписания мастера
	protected.HandleFunc("/providers/{providerId}/schedule", updateProviderSchedule.Handle).Methods(http.MethodPut)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
