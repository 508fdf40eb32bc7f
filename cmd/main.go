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
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelReservationHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/cancel_reservation"
	checkAssetRangeHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/check_asset_range"
	createReservationHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/create_reservation"
	deleteSlotHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/delete_slot"
	getMonthAvailabilityHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_month_availability"
	getReservationHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/health"
	listAssetReservationsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/list_asset_reservations"
	listSlotsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/list_slots"
	openSlotsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/open_slots"
	rangeSelectionHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/range_selection"
	resolveRangeHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/resolve_range"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/config"
	"github.com/m04kA/SMC-CharterService/internal/infra/cache/aggregates"
	reservationRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/slot"
	catalogServiceClient "github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/internal/selection"
	availabilityService "github.com/m04kA/SMC-CharterService/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-CharterService/internal/service/reservations"
	slotsService "github.com/m04kA/SMC-CharterService/internal/service/slots"
	createReservationUC "github.com/m04kA/SMC-CharterService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/metrics"
	"github.com/m04kA/SMC-CharterService/pkg/tracing"
	"github.com/m04kA/SMC-CharterService/pkg/txmanager"
)

// redisPinger приводит *redis.Client к health.Pinger
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

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

	log.Info("Starting SMC-CharterService...")
	log.Info("Configuration loaded from config.toml")

	// Трейсинг (no-op, если выключен)
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled (endpoint=%s, ratio=%.2f)", cfg.Tracing.OTLPEndpoint, cfg.Tracing.SampleRatio)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		engineMetrics    availabilityService.Metrics
		selectionMetrics selection.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		engineMetrics = metricsCollector
		selectionMetrics = metricsCollector
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

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		slotRepository        *slotRepo.Repository
		reservationRepository *reservationRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(db)
	}

	readiness := map[string]healthHandler.Pinger{"postgres": db}

	// Кэш агрегатов в redis (опционально)
	var (
		aggregateCache availabilityService.AggregateCache
		invalidator    slotsService.CacheInvalidator
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		cache := aggregates.NewCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		aggregateCache = cache
		invalidator = cache
		readiness["redis"] = redisPinger{client: redisClient}
		log.Info("Aggregate cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		slotRepository,
		reservationRepository,
		catalogClient,
		aggregateCache,
		engineMetrics,
		log,
		availabilityService.Config{
			SynthesizeFullFromHalves: cfg.Engine.SynthesizeFullFromHalves,
			MaxAggregateDays:         cfg.Engine.MaxAggregateDays,
		},
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		catalogClient,
		txMgr,
		invalidator,
		cfg.Engine.MaxAggregateDays,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		invalidator,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		availabilitySvc,
		catalogClient,
		txMgr,
		invalidator,
		cfg.Engine.MaxRangeDays,
		log,
	)

	// Сессии выбора диапазона живут в памяти процесса
	selectionStore := selection.NewStore(
		availabilitySvc,
		selection.Config{
			MaxRangeDays: cfg.Engine.MaxRangeDays,
			SessionTTL:   time.Duration(cfg.Selection.SessionTTLSeconds) * time.Second,
		},
		selectionMetrics,
		log,
	)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go selectionStore.Run(sweepCtx, time.Duration(cfg.Selection.SweepIntervalSeconds)*time.Second)

	// Инициализируем handlers
	health := healthHandler.NewHandler(readiness, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(availabilitySvc, log)
	resolveRange := resolveRangeHandler.NewHandler(availabilitySvc, cfg.Engine.MaxRangeDays, log)
	checkAssetRange := checkAssetRangeHandler.NewHandler(availabilitySvc, cfg.Engine.MaxRangeDays, log)
	rangeSelection := rangeSelectionHandler.NewHandler(selectionStore, log)
	openSlots := openSlotsHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	listAssetReservations := listAssetReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Пробы для оркестратора
	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь на месяц
	api.HandleFunc("/availability/month", getMonthAvailability.Handle).Methods(http.MethodGet)

	// Подходящие суда для диапазона
	api.HandleFunc("/availability/range", resolveRange.Handle).Methods(http.MethodGet)

	// Проверка конкретного судна
	api.HandleFunc("/assets/{assetId}/availability", checkAssetRange.Handle).Methods(http.MethodGet)

	// --- Интерактивный выбор диапазона ---
	api.HandleFunc("/selections", rangeSelection.Create).Methods(http.MethodPost)
	api.HandleFunc("/selections/{sessionId}", rangeSelection.Get).Methods(http.MethodGet)
	api.HandleFunc("/selections/{sessionId}", rangeSelection.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/selections/{sessionId}/clicks", rangeSelection.Click).Methods(http.MethodPost)
	api.HandleFunc("/selections/{sessionId}/end-dates/{date}", rangeSelection.CheckEndDate).Methods(http.MethodGet)
	api.HandleFunc("/selections/{sessionId}/reset", rangeSelection.Reset).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление слотами и бронированиями (для операторов) ---
	protected.HandleFunc("/admin/assets/{assetId}/slots", openSlots.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/admin/assets/{assetId}/slots", listSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/assets/{assetId}/reservations", listAssetReservations.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
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

	// Останавливаем фоновые задачи
	stopSweep()
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

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
