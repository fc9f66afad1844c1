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
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkGiftCardHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/check_gift_card"
	checkPromoCodeHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/check_promo_code"
	createBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_booking"
	getCalendarEventHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_calendar_event"
	getCatalogHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_catalog"
	getSettingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_bookings"
	patchBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/patch_booking"
	startCheckoutHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/start_checkout"
	updateSettingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	discountRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/discount"
	settingsRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/checkout"
	bookingsService "github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
	discountsService "github.com/m04kA/SMC-StudioBooking/internal/service/discounts"
	settingsService "github.com/m04kA/SMC-StudioBooking/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
	startCheckoutUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/start_checkout"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

const catalogCachePrefix = "studio-booking:"

func main() {
	configPath := "config.toml"
	if p := os.Getenv("STUDIO_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	var logOpts []logger.Option
	if cfg.Logs.IsDevelopment() {
		logOpts = append(logOpts, logger.WithConsole())
	}
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, logOpts...)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudioBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Studio.Location()
	if err != nil {
		log.Fatal("Failed to load studio timezone %q: %v", cfg.Studio.Timezone, err)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен во всех потребителях
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	readDB := sqlx.NewDb(db, "postgres")

	// Кэш каталога (опционально)
	var catalogCache catalogService.Cache
	if cfg.Redis.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewClient(pingCtx, cfg.Redis.URL)
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			catalogCache = cache.NewRedisCache(redisClient, catalogCachePrefix, log,
				cache.WithOperationTimeout(cfg.Redis.OperationTimeout()))
			log.Info("Catalog cache enabled (ttl=%s)", cfg.Redis.CatalogTTL())
		}
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(readDB)
	discountRepository := discountRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithRetry(cfg.Booking.CommitAttempts, cfg.Booking.CommitBackoff()),
		txmanager.WithOnRetry(metricsCollector.CommitRetried),
	)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, catalogCache, cfg.Redis.CatalogTTL(), log)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		domain.StudioSettings{
			OpenHour:                cfg.Studio.OpenHour,
			CloseHour:               cfg.Studio.CloseHour,
			MinBookingNoticeMinutes: cfg.Studio.MinBookingNoticeMinutes,
			AdvanceBookingDays:      cfg.Studio.AdvanceBookingDays,
			ReleaseCancelledSlots:   cfg.Studio.ReleaseCancelledSlots,
		},
		location,
		catalogSvc,
		log,
	)
	discountsSvc := discountsService.NewService(discountRepository, settingsSvc, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingRepository, settingsSvc, txMgr, log)

	// Платежный провайдер (опционально)
	var checkoutClient startCheckoutUC.CheckoutClient
	if cfg.Checkout.Enabled() {
		checkoutClient = checkout.NewClient(checkout.Config{
			SecretKey:  cfg.Checkout.StripeSecretKey,
			Currency:   cfg.Checkout.Currency,
			SuccessURL: cfg.Checkout.SuccessURL,
			CancelURL:  cfg.Checkout.CancelURL,
		}, log)
		log.Info("Stripe checkout enabled (currency=%s)", cfg.Checkout.Currency)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		discountRepository,
		discountsSvc,
		catalogSvc,
		settingsSvc,
		txMgr,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogSvc,
		settingsSvc,
		log,
	)

	startCheckoutUseCase := startCheckoutUC.NewUseCase(bookingRepository, checkoutClient, log)

	// Инициализируем handlers
	httpLog := log.With("layer", "http")

	getCatalog := getCatalogHandler.NewHandler(catalogSvc, httpLog)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, httpLog)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, httpLog)
	checkPromoCode := checkPromoCodeHandler.NewHandler(discountsSvc, httpLog)
	checkGiftCard := checkGiftCardHandler.NewHandler(discountsSvc, httpLog)
	startCheckout := startCheckoutHandler.NewHandler(startCheckoutUseCase, httpLog)
	patchBooking := patchBookingHandler.NewHandler(bookingSvc, httpLog)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, httpLog)
	getBooking := getBookingHandler.NewHandler(bookingSvc, httpLog)
	getCalendarEvent := getCalendarEventHandler.NewHandler(bookingSvc, httpLog)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, httpLog)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, httpLog)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(httpLog))
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты для эндпоинтов, которые можно перебирать
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, httpLog)
		limited = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	adminAuth := middleware.AdminAuth(cfg.Admin.Token, httpLog)
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not set, admin endpoints will reject all requests")
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/promo-codes", limited(checkPromoCode.Handle)).Methods(http.MethodPost)
	api.Handle("/gift-cards", limited(checkGiftCard.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/{bookingId}/checkout", limited(startCheckout.Handle)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	// Изменение статуса или полей бронирования
	api.Handle("/bookings", adminAuth(http.HandlerFunc(patchBooking.Handle))).Methods(http.MethodPatch)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminAuth)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/calendar-event", getCalendarEvent.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// CORS оборачивает весь роутер, чтобы preflight OPTIONS не отсекался сопоставлением методов
	handler := middleware.CORS(cfg.CORS.AllowedOrigins)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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
	close(stopMetricsCh)

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
