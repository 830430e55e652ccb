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

	cancelBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/cancel_booking"
	cancelServiceBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/cancel_service_booking"
	checkCapacityHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_capacity"
	checkInHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_out"
	checkStockHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_stock"
	createBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_booking"
	createServiceBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_service_booking"
	lowStockAlertsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/low_stock_alerts"
	releaseCapacityHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/release_capacity"
	releaseStockHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/release_stock"
	reserveCapacityHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/reserve_capacity"
	reserveStockHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/reserve_stock"
	updateStockHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/update_stock"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/config"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	cancellationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/cancellation"
	capacityRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/capacity"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/customer"
	financeRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/finance"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	serviceBookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/servicebooking"
	stockRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/stock"
	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
	stockService "github.com/m04kA/HMS-ReservationService/internal/service/stock"
	cancelBookingUC "github.com/m04kA/HMS-ReservationService/internal/usecase/cancel_booking"
	cancelServiceBookingUC "github.com/m04kA/HMS-ReservationService/internal/usecase/cancel_service_booking"
	checkInUC "github.com/m04kA/HMS-ReservationService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/HMS-ReservationService/internal/usecase/check_out"
	createBookingUC "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
	createServiceBookingUC "github.com/m04kA/HMS-ReservationService/internal/usecase/create_service_booking"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/logger"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
	"github.com/m04kA/HMS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
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

	log.Info("Starting HMS-ReservationService...")
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

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		roomRepository           *roomRepo.Repository
		bookingRepository        *bookingRepo.Repository
		serviceBookingRepository *serviceBookingRepo.Repository
		capacityRepository       *capacityRepo.Repository
		stockRepository          *stockRepo.Repository
		customerRepository       *customerRepo.Repository
		financeRepository        *financeRepo.Repository
		cancellationRepository   *cancellationRepo.Repository
		catalogRepository        *catalogRepo.Repository
		txMgr                    TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		roomRepository = roomRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceBookingRepository = serviceBookingRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		stockRepository = stockRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		financeRepository = financeRepo.NewRepository(wrappedDB)
		cancellationRepository = cancellationRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		roomRepository = roomRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		serviceBookingRepository = serviceBookingRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		stockRepository = stockRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		financeRepository = financeRepo.NewRepository(db)
		cancellationRepository = cancellationRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	capacitySvc := capacityService.NewService(capacityRepository, txMgr, log)
	stockSvc := stockService.NewService(stockRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		roomRepository,
		bookingRepository,
		customerRepository,
		txMgr,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(
		bookingRepository,
		roomRepository,
		txMgr,
		log,
	)
	checkOutUseCase := checkOutUC.NewUseCase(
		bookingRepository,
		roomRepository,
		financeRepository,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		customerRepository,
		cancellationRepository,
		financeRepository,
		txMgr,
		log,
	)
	createServiceBookingUseCase := createServiceBookingUC.NewUseCase(
		catalogRepository,
		customerRepository,
		serviceBookingRepository,
		capacitySvc,
		financeRepository,
		txMgr,
		log,
	)
	cancelServiceBookingUseCase := cancelServiceBookingUC.NewUseCase(
		serviceBookingRepository,
		customerRepository,
		capacitySvc,
		financeRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	createServiceBooking := createServiceBookingHandler.NewHandler(createServiceBookingUseCase, log)
	cancelServiceBooking := cancelServiceBookingHandler.NewHandler(cancelServiceBookingUseCase, log)
	checkCapacity := checkCapacityHandler.NewHandler(capacitySvc, log)
	reserveCapacity := reserveCapacityHandler.NewHandler(capacitySvc, log)
	releaseCapacity := releaseCapacityHandler.NewHandler(capacitySvc, log)
	checkStock := checkStockHandler.NewHandler(stockSvc, log)
	reserveStock := reserveStockHandler.NewHandler(stockSvc, log)
	releaseStock := releaseStockHandler.NewHandler(stockSvc, log)
	updateStock := updateStockHandler.NewHandler(stockSvc, log)
	lowStockAlerts := lowStockAlertsHandler.NewHandler(stockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Проверка capacity ledger услуги
	api.HandleFunc("/hotels/{hotelId}/services/{serviceId}/capacity",
		checkCapacity.Handle).Methods(http.MethodGet)

	// Проверка складских остатков услуги
	api.HandleFunc("/hotels/{hotelId}/services/{serviceId}/stock",
		checkStock.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования номеров ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-out", checkOut.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Бронирования услуг ---
	protected.HandleFunc("/service-bookings", createServiceBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/service-bookings/{serviceBookingId}/cancel", cancelServiceBooking.Handle).Methods(http.MethodPatch)

	// --- Управление складом (для персонала отеля) ---
	protected.HandleFunc("/hotels/{hotelId}/services/{serviceId}/capacity/reserve", reserveCapacity.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/hotels/{hotelId}/services/{serviceId}/capacity/release", releaseCapacity.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/hotels/{hotelId}/services/{serviceId}/stock/reserve", reserveStock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/hotels/{hotelId}/services/{serviceId}/stock/release", releaseStock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/hotels/{hotelId}/services/{serviceId}/stock", updateStock.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/hotels/{hotelId}/services/{serviceId}/stock/alerts", lowStockAlerts.Handle).Methods(http.MethodGet)

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
