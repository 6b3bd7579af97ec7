package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinicore/clinicore/config"
	v1 "github.com/clinicore/clinicore/internal/handler/v1"
	"github.com/clinicore/clinicore/internal/notify"
	"github.com/clinicore/clinicore/internal/repository"
	"github.com/clinicore/clinicore/internal/service"
	"github.com/clinicore/clinicore/pkg/auth"
	"github.com/clinicore/clinicore/pkg/database"
	"github.com/clinicore/clinicore/pkg/logger"
	"github.com/clinicore/clinicore/pkg/metrics"
	"github.com/clinicore/clinicore/pkg/tracer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clinicore-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("clinicore")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	recordRepo := repository.NewMedicalRecordRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, collector, log)
	defer auditSvc.Shutdown()

	registry := notify.NewRegistry(log)
	notifier := meteredNotifier{registry: registry, collector: collector}

	authSvc := service.NewAuthService(userRepo, jwtManager, auditSvc, log)
	patientSvc := service.NewPatientService(patientRepo, auditSvc, log)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, patientRepo, userRepo, notifier, auditSvc, log)
	recordSvc := service.NewMedicalRecordService(recordRepo, patientRepo, assignmentRepo, userRepo, auditSvc, log)
	doctorSvc := service.NewDoctorService(userRepo, log)

	router := v1.NewRouter(v1.RouterDeps{
		Config:        cfg,
		JWTManager:    jwtManager,
		Collector:     collector,
		Log:           log,
		Auth:          v1.NewAuthHandler(authSvc),
		Doctors:       v1.NewDoctorHandler(doctorSvc, assignmentSvc),
		Patients:      v1.NewPatientHandler(patientSvc, assignmentSvc, collector),
		Records:       v1.NewMedicalRecordHandler(recordSvc, collector),
		Notifications: v1.NewWSHandler(authSvc, registry, collector, log),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// meteredNotifier wraps the registry so assignment notifications feed the
// delivery counters.
type meteredNotifier struct {
	registry  *notify.Registry
	collector *metrics.Collector
}

func (n meteredNotifier) Send(userID uuid.UUID, message string) bool {
	delivered := n.registry.Send(userID, message)
	if delivered {
		n.collector.NotificationsDelivered.Inc()
	} else {
		n.collector.NotificationsUndelivered.Inc()
	}
	return delivered
}
