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

	advanceStepHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/advance_step"
	createDraftHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/create_draft"
	discardDraftHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/discard_draft"
	getDraftHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/get_draft"
	getSummaryHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/get_summary"
	previousStepHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/previous_step"
	selectDateHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/select_date"
	submitBookingHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/submit_booking"
	updateDraftHandler "github.com/aida-cosmetics/ACS-ConsultationService/internal/api/handlers/update_draft"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/api/middleware"
	"github.com/aida-cosmetics/ACS-ConsultationService/internal/config"
	draftRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/draft"
	summaryRepo "github.com/aida-cosmetics/ACS-ConsultationService/internal/infra/storage/summary"
	consultationAPIClient "github.com/aida-cosmetics/ACS-ConsultationService/internal/integrations/consultationapi"
	draftsService "github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts"
	summariesService "github.com/aida-cosmetics/ACS-ConsultationService/internal/service/summaries"
	advanceStepUC "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/advance_step"
	selectDateUC "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/select_date"
	submitBookingUC "github.com/aida-cosmetics/ACS-ConsultationService/internal/usecase/submit_booking"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/dbmetrics"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/logger"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/metrics"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/simpletxmanager"
	"github.com/aida-cosmetics/ACS-ConsultationService/pkg/txmanager"
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

	log.Info("Starting ACS-ConsultationService...")
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

	// Инициализируем клиент внешнего consultation API
	// При выключенных метриках интерфейс обязан остаться nil, а не typed-nil
	var apiMetrics consultationAPIClient.MetricsRecorder
	if cfg.Metrics.Enabled {
		apiMetrics = metricsCollector
	}
	apiClient := consultationAPIClient.NewClient(
		cfg.ConsultationAPI.URL,
		time.Duration(cfg.ConsultationAPI.Timeout)*time.Second,
		log,
		apiMetrics,
	)
	log.Info("Consultation API client initialized (url=%s, timeout=%ds)",
		cfg.ConsultationAPI.URL, cfg.ConsultationAPI.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		draftRepository   *draftRepo.Repository
		summaryRepository *summaryRepo.Repository
		txMgr             submitBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		draftRepository = draftRepo.NewRepository(wrappedDB)
		summaryRepository = summaryRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		draftRepository = draftRepo.NewRepository(db)
		summaryRepository = summaryRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	draftTTL := time.Duration(cfg.Wizard.DraftTTLMinutes) * time.Minute
	draftSvc := draftsService.NewService(draftRepository, draftTTL, log)
	summarySvc := summariesService.NewService(summaryRepository, log)

	// Инициализируем use cases
	advanceStepUseCase := advanceStepUC.NewUseCase(draftRepository, log)
	selectDateUseCase := selectDateUC.NewUseCase(draftRepository, apiClient, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		draftRepository,
		summaryRepository,
		apiClient,
		txMgr,
		submitBookingUC.Config{
			APIToken:      cfg.ConsultationAPI.APIToken,
			PublicBaseURL: cfg.Wizard.PublicBaseURL,
			SuccessPath:   cfg.Wizard.SuccessPath,
			SummaryTTL:    time.Duration(cfg.Wizard.SummaryTTLMinutes) * time.Minute,
		},
		log,
	)

	// Инициализируем handlers
	createDraft := createDraftHandler.NewHandler(draftSvc, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	updateDraft := updateDraftHandler.NewHandler(draftSvc, log)
	discardDraft := discardDraftHandler.NewHandler(draftSvc, log)
	previousStep := previousStepHandler.NewHandler(draftSvc, log)
	advanceStep := advanceStepHandler.NewHandler(advanceStepUseCase, log)
	selectDate := selectDateHandler.NewHandler(selectDateUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getSummary := getSummaryHandler.NewHandler(summarySvc, log)

	// Фоновая чистка просроченных черновиков и сводок
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go runPurgeLoop(purgeCtx, cfg, draftSvc, summarySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без токена)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Создание черновика - единственный маршрут без токена в пути
	api.HandleFunc("/consultations/drafts", createDraft.Handle).Methods(http.MethodPost)

	// Маршруты с токеном черновика в пути
	tokenized := api.PathPrefix("").Subrouter()
	tokenized.Use(middleware.SessionToken)

	// --- Черновик анкеты ---
	tokenized.HandleFunc("/consultations/drafts/{token}", getDraft.Handle).Methods(http.MethodGet)
	tokenized.HandleFunc("/consultations/drafts/{token}", updateDraft.Handle).Methods(http.MethodPatch)
	tokenized.HandleFunc("/consultations/drafts/{token}", discardDraft.Handle).Methods(http.MethodDelete)

	// --- Навигация мастера ---
	tokenized.HandleFunc("/consultations/drafts/{token}/next", advanceStep.Handle).Methods(http.MethodPost)
	tokenized.HandleFunc("/consultations/drafts/{token}/previous", previousStep.Handle).Methods(http.MethodPost)

	// --- Выбор даты и сабмит ---
	tokenized.HandleFunc("/consultations/drafts/{token}/date", selectDate.Handle).Methods(http.MethodPut)
	tokenized.HandleFunc("/consultations/drafts/{token}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Сводка брони для страницы успеха ---
	tokenized.HandleFunc("/consultations/summary/{token}", getSummary.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновую чистку
	stopPurge()

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

// runPurgeLoop периодически удаляет просроченные черновики и сводки
func runPurgeLoop(
	ctx context.Context,
	cfg *config.Config,
	draftSvc *draftsService.Service,
	summarySvc *summariesService.Service,
	log *logger.Logger,
) {
	interval := time.Duration(cfg.Wizard.PurgeInterval) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Purge loop started (interval=%s)", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Purge loop stopped")
			return
		case <-ticker.C:
			if count, err := draftSvc.PurgeExpired(ctx); err != nil {
				log.Error("Purge: failed to delete expired drafts: %v", err)
			} else if count > 0 {
				log.Info("Purge: deleted %d expired drafts", count)
			}

			if count, err := summarySvc.PurgeExpired(ctx); err != nil {
				log.Error("Purge: failed to delete expired summaries: %v", err)
			} else if count > 0 {
				log.Info("Purge: deleted %d expired summaries", count)
			}
		}
	}
}
