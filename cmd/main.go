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
	"golang.org/x/time/rate"

	cancelBookingHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/create_booking"
	createTemplateHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/create_template"
	getAvailabilityHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/get_business_bookings"
	getBusinessTemplatesHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/get_business_templates"
	getConsumerBookingsHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/get_consumer_bookings"
	getTemplateHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/get_template"
	updateTemplateHandler "github.com/m04kA/SMC-ActivityService/internal/api/handlers/update_template"
	"github.com/m04kA/SMC-ActivityService/internal/api/middleware"
	"github.com/m04kA/SMC-ActivityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/booking"
	templateRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/template"
	catalogServiceClient "github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	profileServiceClient "github.com/m04kA/SMC-ActivityService/internal/integrations/profileservice"
	bookingsService "github.com/m04kA/SMC-ActivityService/internal/service/bookings"
	templatesService "github.com/m04kA/SMC-ActivityService/internal/service/templates"
	createBookingUC "github.com/m04kA/SMC-ActivityService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ActivityService/internal/usecase/get_availability"
	completionWorker "github.com/m04kA/SMC-ActivityService/internal/worker/completion"
	"github.com/m04kA/SMC-ActivityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityService/pkg/logger"
	"github.com/m04kA/SMC-ActivityService/pkg/metrics"
	"github.com/m04kA/SMC-ActivityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ActivityService/pkg/txmanager"
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

	log.Info("Starting SMC-ActivityService...")
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		time.Duration(cfg.CatalogService.CacheTTLSeconds)*time.Second,
		log,
	)
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, ProfileService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		templateRepository *templateRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogClient,
		log,
	)
	templateSvc := templatesService.NewService(
		templateRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		templateRepository,
		catalogClient,
		profileClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		templateRepository,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getConsumerBookings := getConsumerBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	createTemplate := createTemplateHandler.NewHandler(templateSvc, log)
	getTemplate := getTemplateHandler.NewHandler(templateSvc, log)
	updateTemplate := updateTemplateHandler.NewHandler(templateSvc, log)
	getBusinessTemplates := getBusinessTemplatesHandler.NewHandler(templateSvc, log)

	// Запускаем фоновый воркер завершения прошедших бронирований
	workerInterval := time.Duration(cfg.Worker.CompletionIntervalMinutes) * time.Minute
	if workerInterval <= 0 {
		workerInterval = 5 * time.Minute
	}
	worker := completionWorker.NewWorker(bookingRepository, workerInterval, log)
	worker.Start(context.Background())
	log.Info("Completion worker started (interval=%s)", workerInterval)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Лимитирование запросов по IP
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
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

	// Слоты активности на дату с признаком доступности
	api.HandleFunc("/activities/{activityId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований потребителя
	protected.HandleFunc("/users/{userId}/bookings", getConsumerBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для менеджеров) ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Шаблоны доступности
	protected.HandleFunc("/businesses/{businessId}/templates", createTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/templates", getBusinessTemplates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/templates/{templateId}", getTemplate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/templates/{templateId}", updateTemplate.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновый воркер
	worker.Stop()
	log.Info("Completion worker stopped")

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
