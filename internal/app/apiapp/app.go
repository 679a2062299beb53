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

	"github.com/Kaifateg/RelateHub/internal/config"
	s3infra "github.com/Kaifateg/RelateHub/internal/infra/s3"
	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
	redrepo "github.com/Kaifateg/RelateHub/internal/repo/redis"
	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	contactsvc "github.com/Kaifateg/RelateHub/internal/services/contacts"
	discoversvc "github.com/Kaifateg/RelateHub/internal/services/discover"
	gallerysvc "github.com/Kaifateg/RelateHub/internal/services/gallery"
	matchessvc "github.com/Kaifateg/RelateHub/internal/services/matches"
	profilesvc "github.com/Kaifateg/RelateHub/internal/services/profiles"
	ratesvc "github.com/Kaifateg/RelateHub/internal/services/rate"
	swipesvc "github.com/Kaifateg/RelateHub/internal/services/swipes"
	userssvc "github.com/Kaifateg/RelateHub/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchActionRepo := pgrepo.NewMatchActionRepo(pool)
	contactRequestRepo := pgrepo.NewContactRequestRepo(pool)
	discoverRepo := pgrepo.NewDiscoverRepo(pool)
	photoRepo := pgrepo.NewPhotoRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, userRepo, cfg.Auth.RefreshTTL)
	userService := userssvc.NewService(userRepo, cfg.Auth.BcryptCost)
	rateLimiter := ratesvc.NewLimiter(
		rateRepo,
		cfg.Limits.SwipesPerMinute,
		cfg.Limits.SwipesPer10Seconds,
	)
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Pool:        pool,
		SwipeStore:  swipeRepo,
		Profiles:    profileRepo,
		RateLimiter: rateLimiter,
	})
	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		Pool:    pool,
		Likes:   swipeRepo,
		Actions: matchActionRepo,
	})
	contactService := contactsvc.NewService(contactsvc.Dependencies{
		Pool:     pool,
		Requests: contactRequestRepo,
		Matches:  matchesService,
		Emails:   userRepo,
	})
	discoverService := discoversvc.NewService(discoverRepo)
	profileService := profilesvc.NewService(profileRepo)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

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

	photoStorage := gallerysvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	galleryService := gallerysvc.NewService(photoRepo, photoStorage)

	RegisterRoutes(r, Dependencies{
		AuthService:     authService,
		UserService:     userService,
		ProfileService:  profileService,
		SwipeService:    swipeService,
		MatchService:    matchesService,
		ContactService:  contactService,
		DiscoverService: discoverService,
		GalleryService:  galleryService,
		Logger:          log,
		Config:          cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
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
