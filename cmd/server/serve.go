package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	grpcAdapter "github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/grpc"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/repository/cache"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/mailer"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/auth"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

func serve(parent context.Context) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Configuration loaded",
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("throttle_enabled", cfg.RedisAddress != ""),
		zap.Bool("mail_enabled", cfg.MailEnabled()),
	)

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	metricsSrv := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry)

	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer disconnect(mongoClient, appLogger)
	db := mongoClient.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		appLogger.Warn("Failed to ensure MongoDB indexes", zap.Error(err))
	}
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	store, err := s3.NewS3Storage(ctx, s3.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	}, appLogger)
	if err != nil {
		return err
	}

	events, closeEvents, err := newEventPublisher(cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeEvents()

	throttle, closeThrottle, err := newThrottle(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeThrottle()

	var notifier domain.Notifier
	if cfg.MailEnabled() {
		notifier = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			To:       cfg.AdminNotifyEmail,
		})
	}

	propertyRepo := mongodb.NewPropertyRepository(db, appLogger)
	enquiryRepo := mongodb.NewEnquiryRepository(db, appLogger)
	adminRepo := mongodb.NewAdminRepository(db, appLogger)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo, store, events, metricsManager, appLogger)
	enquiryUC := usecase.NewEnquiryUsecase(enquiryRepo, propertyRepo, events, notifier, metricsManager, appLogger)
	adminUC := usecase.NewAdminUsecase(adminRepo, tokens, 0, appLogger)

	httpSrv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: router.New(router.Deps{
			Properties:   propertyUC,
			Enquiries:    enquiryUC,
			Admins:       adminUC,
			Verifier:     adminUC,
			Throttle:     throttle,
			Metrics:      metricsManager,
			ClientURL:    cfg.ClientURL,
			MaxFileBytes: cfg.MaxUploadBytes(),

			TrustProxyHeaders: cfg.TrustProxyHeaders,
			Log:               appLogger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 2)
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var (
		grpcSrv      *grpc.Server
		healthServer *health.Server
	)
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return err
		}
		grpcSrv, healthServer = grpcAdapter.NewGRPCServer(appLogger, cfg.ServiceName)
		go func() {
			appLogger.Info("Starting gRPC health server", zap.String("port", cfg.GRPCPort))
			if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- err
			}
		}()
		grpcAdapter.SetServing(healthServer, cfg.ServiceName, true)
	}
	servers := runningServers{httpSrv: httpSrv, metricsSrv: metricsSrv, grpcSrv: grpcSrv, health: healthServer}

	select {
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received")
	case err := <-errCh:
		appLogger.Error("Server failed", zap.Error(err))
		servers.shutdown(cfg, appLogger)
		enquiryUC.Wait()
		return err
	}

	servers.shutdown(cfg, appLogger)
	enquiryUC.Wait()
	appLogger.Info("Application stopped")
	return nil
}

type runningServers struct {
	httpSrv    *http.Server
	metricsSrv *http.Server
	grpcSrv    *grpc.Server
	health     *health.Server
}

// shutdown reports NOT_SERVING first so probes stop routing traffic, then
// drains the servers within the configured timeout.
func (s runningServers) shutdown(cfg *config.Config, log *logger.Logger) {
	if s.health != nil {
		grpcAdapter.SetServing(s.health, cfg.ServiceName, false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if s.metricsSrv != nil {
		if err := s.metricsSrv.Shutdown(ctx); err != nil {
			log.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}
	if s.grpcSrv != nil {
		s.grpcSrv.GracefulStop()
	}
}

func newEventPublisher(cfg *config.Config, log *logger.Logger) (domain.EventPublisher, func(), error) {
	if cfg.NATSURL == "" {
		log.Info("NATS_URL not set, domain events are discarded")
		return natsAdapter.NoopPublisher{}, func() {}, nil
	}
	p, err := natsAdapter.NewPublisher(cfg.NATSURL, log, cfg.ServiceName)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

// newThrottle returns a nil throttle when Redis is not configured, which
// disables enquiry rate limiting.
func newThrottle(ctx context.Context, cfg *config.Config, log *logger.Logger) (domain.SubmissionThrottle, func(), error) {
	if cfg.RedisAddress == "" {
		log.Info("REDIS_ADDRESS not set, enquiry throttling disabled")
		return nil, func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close Redis client", zap.Error(err))
		}
	}
	return cache.NewEnquiryThrottle(client, cfg.EnquiryRateLimit, cfg.EnquiryRateWindow), closeFn, nil
}

func disconnect(client *mongo.Client, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error("Error disconnecting from MongoDB", zap.Error(err))
	}
}
