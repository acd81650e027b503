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

	approveBookingHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_booking"
	getClassroomBookingsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_classroom_bookings"
	getClassroomConfigHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_classroom_config"
	getClassroomsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_classrooms"
	getPendingBookingsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_pending_bookings"
	getSettingsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/get_user_bookings"
	modifyBookingHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/modify_booking"
	rejectBookingHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/reject_booking"
	updateClassroomConfigHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/update_classroom_config"
	updateSettingsHandler "github.com/m04kA/SMC-ClassroomService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-ClassroomService/internal/api/middleware"
	"github.com/m04kA/SMC-ClassroomService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/booking"
	classroomRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
	bookingsService "github.com/m04kA/SMC-ClassroomService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-ClassroomService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ClassroomService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClassroomService/internal/usecase/get_available_slots"
	modifyBookingUC "github.com/m04kA/SMC-ClassroomService/internal/usecase/modify_booking"
	"github.com/m04kA/SMC-ClassroomService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClassroomService/pkg/logger"
	"github.com/m04kA/SMC-ClassroomService/pkg/metrics"
	"github.com/m04kA/SMC-ClassroomService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ClassroomService/pkg/txmanager"
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

	log.Info("Starting SMC-ClassroomService...")
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

	// Инициализируем публикацию событий (если включена)
	var events notify.Publisher = notify.NopPublisher{}
	if cfg.Notifications.Enabled {
		client, err := notify.NewClient(
			cfg.Notifications.URL,
			cfg.Notifications.Queue,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to notification broker: %v", err)
		}
		defer client.Close()
		events = client
		log.Info("Notification events enabled (queue=%s)", cfg.Notifications.Queue)
	} else {
		log.Info("Notification events disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		classroomRepository *classroomRepo.Repository
		settingsRepository  *settingsRepo.Repository
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
		classroomRepository = classroomRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		classroomRepository = classroomRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		classroomRepository,
		events,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		classroomRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		classroomRepository,
		settingsRepository,
		events,
		txMgr,
		log,
	)

	modifyBookingUseCase := modifyBookingUC.NewUseCase(
		bookingRepository,
		classroomRepository,
		settingsRepository,
		events,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		classroomRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	modifyBooking := modifyBookingHandler.NewHandler(modifyBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getPendingBookings := getPendingBookingsHandler.NewHandler(bookingSvc, log)
	getClassroomBookings := getClassroomBookingsHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getClassrooms := getClassroomsHandler.NewHandler(settingsSvc, log)
	getClassroomConfig := getClassroomConfigHandler.NewHandler(settingsSvc, log)
	updateClassroomConfig := updateClassroomConfigHandler.NewHandler(settingsSvc, log)

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

	// Список аудиторий
	api.HandleFunc("/classrooms", getClassrooms.Handle).Methods(http.MethodGet)

	// Сетка доступности аудитории на дату
	api.HandleFunc("/classrooms/{classroomId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация аудитории
	api.HandleFunc("/classrooms/{classroomId}/config",
		getClassroomConfig.Handle).Methods(http.MethodGet)

	// Глобальные настройки расписания
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют заголовки идентификации)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Очередь модерации (регистрируется до /bookings/{bookingId})
	protected.HandleFunc("/bookings/pending", getPendingBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}", modifyBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Модерация бронирования
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Список бронирований аудитории
	protected.HandleFunc("/classrooms/{classroomId}/bookings", getClassroomBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации аудитории
	protected.HandleFunc("/classrooms/{classroomId}/config", updateClassroomConfig.Handle).Methods(http.MethodPut)

	// Обновление глобальных настроек расписания
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	log.Info("Server exited")
}
