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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers/cancel_reservation"
	editReservationHandler "github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers/edit_reservation"
	getAvailableSlotsHandler "github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers/get_available_slots"
	getBarberReservationsHandler "github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers/get_barber_reservations"
	getBarberScheduleHandler "github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers/get_barber_schedule"
	getReservationHandler "github.com/DanieLevy/RamelBarbershop-sub005/internal/api/handlers/get_reservation"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/api/middleware"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/config"
	reservationRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/reservation"
	scheduleRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/schedule"
	pushServiceClient "github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/pushservice"
	userServiceClient "github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	reservationsService "github.com/DanieLevy/RamelBarbershop-sub005/internal/service/reservations"
	scheduleService "github.com/DanieLevy/RamelBarbershop-sub005/internal/service/schedule"
	editReservationUC "github.com/DanieLevy/RamelBarbershop-sub005/internal/usecase/edit_reservation"
	resolveAvailabilityUC "github.com/DanieLevy/RamelBarbershop-sub005/internal/usecase/resolve_availability"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/dbmetrics"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/logger"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/metrics"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/simpletxmanager"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/txmanager"
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

	log.Info("Starting RamelBarbershop scheduling service...")
	log.Info("Configuration loaded from config.toml")

	// Вся календарная арифметика живёт в civil таймзоне барбершопа
	normalizer, err := schedtime.NewNormalizer(cfg.Schedule.CivilZone)
	if err != nil {
		log.Fatal("Failed to initialize time normalizer: %v", err)
	}
	log.Info("Scheduling in civil zone %s", cfg.Schedule.CivilZone)

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
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	pushClient := pushServiceClient.NewClient(
		cfg.PushService.URL,
		time.Duration(cfg.PushService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, PushService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.PushService.URL, cfg.PushService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		txMgr                 editReservationUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		userClient,
		pushClient,
		normalizer,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		userClient,
		normalizer,
		log,
	)

	// Инициализируем use cases
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		scheduleRepository,
		reservationRepository,
		userClient,
		normalizer,
		log,
	)

	editReservationUseCase := editReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		userClient,
		pushClient,
		txMgr,
		normalizer,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(resolveAvailabilityUseCase, normalizer.Location(), log)
	editReservation := editReservationHandler.NewHandler(editReservationUseCase, normalizer.Location(), log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getBarberReservations := getBarberReservationsHandler.NewHandler(reservationsSvc, normalizer.Location(), log)
	getBarberSchedule := getBarberScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу - идентификатор для трассировки
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Разметка слотов барбера на день
	api.HandleFunc("/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание барбера и предстоящие закрытия
	api.HandleFunc("/barbers/{barberId}/schedule",
		getBarberSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перенос брони (optimistic concurrency по expectedVersion)
	protected.HandleFunc("/reservations/{reservationId}", editReservation.Handle).Methods(http.MethodPatch)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Барберская панель ---
	// Брони барбера за день
	protected.HandleFunc("/barbers/{barberId}/reservations", getBarberReservations.Handle).Methods(http.MethodGet)

	// CORS для web клиентов барбершопа
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-User-ID", "X-Request-ID"}),
	)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
