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

	cancelBookingHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/create_booking"
	createMultipleBookingsHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/create_multiple_bookings"
	getAvailableSlotsHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/get_booking"
	getOrderBookingsHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/get_order_bookings"
	getUserBookingsHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/get_user_bookings"
	updateBookingHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/update_booking_status"
	updateOrderScheduleHandler "github.com/usluga-market/MPB-BookingService/internal/api/handlers/update_order_schedule"
	"github.com/usluga-market/MPB-BookingService/internal/api/middleware"
	"github.com/usluga-market/MPB-BookingService/internal/config"
	bookingRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/booking"
	marketRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/market"
	orderRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/order"
	notifyServiceClient "github.com/usluga-market/MPB-BookingService/internal/integrations/notifyservice"
	subscriptionServiceClient "github.com/usluga-market/MPB-BookingService/internal/integrations/subscriptionservice"
	bookingsService "github.com/usluga-market/MPB-BookingService/internal/service/bookings"
	createBookingUC "github.com/usluga-market/MPB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/usluga-market/MPB-BookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/usluga-market/MPB-BookingService/internal/usecase/update_booking"
	updateOrderScheduleUC "github.com/usluga-market/MPB-BookingService/internal/usecase/update_order_schedule"
	"github.com/usluga-market/MPB-BookingService/pkg/dbmetrics"
	"github.com/usluga-market/MPB-BookingService/pkg/logger"
	"github.com/usluga-market/MPB-BookingService/pkg/metrics"
	"github.com/usluga-market/MPB-BookingService/pkg/simpletxmanager"
	"github.com/usluga-market/MPB-BookingService/pkg/txmanager"
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

	log.Info("Starting MPB-BookingService...")
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
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	subsClient := subscriptionServiceClient.NewClient(
		cfg.SubscriptionService.URL,
		time.Duration(cfg.SubscriptionService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds, SubscriptionService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout, cfg.SubscriptionService.URL, cfg.SubscriptionService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		orderRepository   *orderRepo.Repository
		marketRepository  *marketRepo.Repository
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
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		marketRepository = marketRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		marketRepository = marketRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		orderRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		orderRepository,
		marketRepository,
		subsClient,
		notifyClient,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		orderRepository,
		marketRepository,
		subsClient,
		txMgr,
		log,
	)
	updateOrderScheduleUseCase := updateOrderScheduleUC.NewUseCase(
		bookingRepository,
		orderRepository,
		notifyClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		orderRepository,
		marketRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createMultipleBookings := createMultipleBookingsHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOrderBookings := getOrderBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	updateOrderSchedule := updateOrderScheduleHandler.NewHandler(updateOrderScheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Доступность заказа по дням периода
	api.HandleFunc("/orders/{orderId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Пакетное создание бронирований
	protected.HandleFunc("/bookings/batch", createMultipleBookings.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другой слот
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление заказом (для владельцев) ---
	// Список бронирований заказа
	protected.HandleFunc("/orders/{orderId}/bookings", getOrderBookings.Handle).Methods(http.MethodGet)

	// Обновление расписания заказа
	protected.HandleFunc("/orders/{orderId}/schedule", updateOrderSchedule.Handle).Methods(http.MethodPut)

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
