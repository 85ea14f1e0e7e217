package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SodiqOgundairo/condolence-backend/internal/config"
	s3infra "github.com/SodiqOgundairo/condolence-backend/internal/infra/s3"
	tginfra "github.com/SodiqOgundairo/condolence-backend/internal/infra/telegram"
	snapshotjob "github.com/SodiqOgundairo/condolence-backend/internal/jobs/snapshot"
	pgrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/postgres"
	redrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/redis"
	authsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/auth"
	gallerysvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gallery"
	giftsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gifts"
	mediasvc "github.com/SodiqOgundairo/condolence-backend/internal/services/media"
	ratesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/rate"
	tributesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/tributes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
	runners    []*snapshotjob.Runner
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	messageRepo := pgrepo.NewMessageRepo(pool)
	photoRepo := pgrepo.NewPhotoRepo(pool)
	giftRepo := pgrepo.NewGiftRepo(pool)
	adminUserRepo := pgrepo.NewAdminUserRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	var notifier *tginfra.Notifier
	if cfg.Notify.TelegramToken != "" {
		if n, err := tginfra.NewNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID); err != nil {
			log.Warn("telegram notifier init failed, continuing without notifications", zap.Error(err))
		} else {
			notifier = n
		}
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, adminUserRepo, cfg.Auth.RefreshTTL)

	voicenoteStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.VoicenoteBucket, cfg.S3.PublicBaseURL)
	photoStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.PhotoBucket, cfg.S3.PublicBaseURL)

	tributeService := tributesvc.NewService(messageRepo, voicenoteStorage, tributeNotifier(notifier), cfg.Site.PageSize, log)
	galleryService := gallerysvc.NewService(photoRepo, photoStorage, galleryNotifier(notifier), cfg.Site.PageSize, log)
	giftService := giftsvc.NewService(giftRepo, giftNotifier(notifier), cfg.Gifts, log)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Site.SubmissionsPerMinute)

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		TributeService: tributeService,
		GalleryService: galleryService,
		GiftService:    giftService,
		RateLimiter:    rateLimiter,
		Logger:         log,
		Config:         cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	runners := []*snapshotjob.Runner{
		snapshotjob.NewRunner("messages", cfg.Site.MessageRefreshInterval, tributeService.RefreshPublic, log),
		snapshotjob.NewRunner("photos", cfg.Site.PhotoRefreshInterval, galleryService.RefreshPublic, log),
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
		runners:    runners,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	for _, runner := range a.runners {
		runner.Start(ctx)
	}

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	for _, runner := range a.runners {
		runner.Stop()
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

// The notifier is optional; a typed nil inside a non-nil interface would
// defeat the services' nil checks, so the conversion happens here.
func tributeNotifier(n *tginfra.Notifier) tributesvc.Notifier {
	if n == nil {
		return nil
	}
	return n
}

func galleryNotifier(n *tginfra.Notifier) gallerysvc.Notifier {
	if n == nil {
		return nil
	}
	return n
}

func giftNotifier(n *tginfra.Notifier) giftsvc.Notifier {
	if n == nil {
		return nil
	}
	return n
}
