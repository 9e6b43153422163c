package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"hrboard/internal/domain/applicants"
	"hrboard/internal/domain/attendance"
	"hrboard/internal/domain/audit"
	"hrboard/internal/domain/auth"
	"hrboard/internal/domain/departments"
	"hrboard/internal/domain/employees"
	"hrboard/internal/domain/interviews"
	"hrboard/internal/domain/jobs"
	"hrboard/internal/domain/payroll"
	"hrboard/internal/domain/performance"
	"hrboard/internal/domain/tasks"
	"hrboard/internal/platform/config"
	"hrboard/internal/platform/db"
	"hrboard/internal/platform/email"
	"hrboard/internal/platform/events"
	"hrboard/internal/platform/metrics"
	"hrboard/internal/transport/http/api"
	applicanthandler "hrboard/internal/transport/http/handlers/applicants"
	attendancehandler "hrboard/internal/transport/http/handlers/attendance"
	audithandler "hrboard/internal/transport/http/handlers/audit"
	authhandler "hrboard/internal/transport/http/handlers/auth"
	departmenthandler "hrboard/internal/transport/http/handlers/departments"
	employeehandler "hrboard/internal/transport/http/handlers/employees"
	interviewhandler "hrboard/internal/transport/http/handlers/interviews"
	jobhandler "hrboard/internal/transport/http/handlers/jobs"
	payrollhandler "hrboard/internal/transport/http/handlers/payroll"
	performancehandler "hrboard/internal/transport/http/handlers/performance"
	taskhandler "hrboard/internal/transport/http/handlers/tasks"
	"hrboard/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	database := client.Database(cfg.MongoDatabase)

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, database, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	// Stores and services.
	employeeStore := employees.NewStore(database)
	departmentStore := departments.NewStore(database)
	jobStore := jobs.NewStore(database)
	applicantStore := applicants.NewStore(database)
	interviewStore := interviews.NewStore(database)
	attendanceStore := attendance.NewStore(database)
	payrollStore := payroll.NewStore(database)
	taskStore := tasks.NewStore(database)
	auditStore := audit.NewStore(database)

	adminStore := auth.NewStore(database)
	authService := auth.NewService(adminStore, cfg.JWTSecret)
	departmentService := departments.NewService(departmentStore, employeeStore)
	jobService := jobs.NewService(jobStore, departmentStore)
	applicantService := applicants.NewService(applicantStore, jobStore)
	interviewService := interviews.NewService(interviewStore, applicantStore, jobStore, email.New(cfg), cfg.EmailFrom)
	performanceService := performance.NewService(
		performance.NewStore(database),
		performance.NewTaskReader(database),
		performance.NewEmployeeDirectory(employeeStore),
		adminStore,
	)

	dispatcher := events.NewDispatcher(cfg.EventQueueSize)
	dispatcher.Subscribe(performance.NewRecalculator(performanceService).HandleTaskChanged)
	dispatcher.Start(ctx)

	taskService := tasks.NewService(taskStore, employeeStore, dispatcher)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, pingCancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer pingCancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	authHandler := authhandler.NewHandler(authService)
	jobHandler := jobhandler.NewHandler(jobService, auditStore)
	applicantHandler := applicanthandler.NewHandler(applicantService)

	router.Route("/api/v1", func(r chi.Router) {
		// Public surface: careers listing, application form, login.
		jobHandler.RegisterPublicRoutes(r)
		applicantHandler.RegisterPublicRoutes(r)
		authHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			authHandler.RegisterRoutes(r)
			employeehandler.NewHandler(employeeStore, auditStore).RegisterRoutes(r)
			departmenthandler.NewHandler(departmentService, auditStore).RegisterRoutes(r)
			jobHandler.RegisterRoutes(r)
			applicantHandler.RegisterRoutes(r)
			interviewhandler.NewHandler(interviewService).RegisterRoutes(r)
			attendancehandler.NewHandler(attendanceStore, employeeStore).RegisterRoutes(r)
			payrollhandler.NewHandler(payrollStore, employeeStore).RegisterRoutes(r)
			taskhandler.NewHandler(taskService).RegisterRoutes(r)
			performancehandler.NewHandler(performanceService, auditStore).RegisterRoutes(r)
			audithandler.NewHandler(auditStore).RegisterRoutes(r)
		})
	})

	log.Printf("hrboard server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
