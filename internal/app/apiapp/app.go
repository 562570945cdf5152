package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/config"
	s3infra "github.com/amandanordqvist/datingapp/internal/infra/s3"
	"github.com/amandanordqvist/datingapp/internal/jobs/sweep"
	pgrepo "github.com/amandanordqvist/datingapp/internal/repo/postgres"
	redrepo "github.com/amandanordqvist/datingapp/internal/repo/redis"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	chatsvc "github.com/amandanordqvist/datingapp/internal/services/chats"
	decksvc "github.com/amandanordqvist/datingapp/internal/services/deck"
	mediasvc "github.com/amandanordqvist/datingapp/internal/services/media"
	momentsvc "github.com/amandanordqvist/datingapp/internal/services/moments"
	prefsvc "github.com/amandanordqvist/datingapp/internal/services/prefs"
	profilesvc "github.com/amandanordqvist/datingapp/internal/services/profiles"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	sweepJob   *sweep.Job
	stopSweep  context.CancelFunc
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	tokenRepo := redrepo.NewTokenRepo(redisClient)
	momentsRepo := redrepo.NewMomentsRepo(redisClient)
	chatRepo := redrepo.NewChatRepo(redisClient)
	prefRepo := redrepo.NewPrefRepo(redisClient)

	// The profile catalog prefers postgres but runs from the built-in
	// seed set when no DSN is configured or the pool cannot start.
	var pool *pgxpool.Pool
	var profileStore profilesvc.Store
	var decisions decksvc.DecisionSink
	if cfg.Postgres.DSN != "" {
		if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
			log.Warn("postgres init failed, continuing with seed catalog", zap.Error(err))
		} else {
			pool = p
			profileStore = pgrepo.NewProfileRepo(pool)
			decisions = pgrepo.NewDecisionRepo(pool)
		}
	}
	if profileStore == nil {
		profileStore = profilesvc.NewMemoryCatalog(profilesvc.SeedProfiles())
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, tokenRepo, cfg.Auth.RefreshTTL)

	profileService := profilesvc.NewService(profilesvc.Dependencies{
		Store:  profileStore,
		Logger: log,
	})

	deckService := decksvc.NewService(decksvc.Dependencies{
		Source:    profileStore,
		Decisions: decisions,
		Logger:    log,
	}, decksvc.Config{
		ViewportWidth:  cfg.Deck.ViewportWidth,
		CommitDuration: cfg.Deck.CommitDuration,
		PageSize:       cfg.Deck.PageSize,
	})

	chatsService := chatsvc.NewService(chatsvc.Dependencies{
		Store:  chatRepo,
		Logger: log,
	})

	momentsService := momentsvc.NewService(momentsvc.Dependencies{
		Store:   momentsRepo,
		Replies: chatsService,
		Logger:  log,
	}, momentsvc.Config{
		Lifetime: cfg.Moments.Lifetime,
	})

	viewerSessions := momentsvc.NewViewerSessions(momentsvc.ViewerDependencies{
		Moments: momentsService,
		Logger:  log,
	}, cfg.Moments.StoryDuration)

	prefsService := prefsvc.NewService(prefRepo, log)

	var mediaService *mediasvc.Service
	if cfg.S3.Endpoint != "" {
		if s3Client, err := s3infra.NewClient(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		}); err != nil {
			log.Warn("s3 init failed, photo upload disabled", zap.Error(err))
		} else {
			mediaService = mediasvc.NewService(mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket))
		}
	}

	sweepJob := sweep.New(momentsService, cfg.Moments.SweepInterval, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		DeckService:    deckService,
		MomentsService: momentsService,
		ViewerSessions: viewerSessions,
		ChatsService:   chatsService,
		ProfileService: profileService,
		PrefsService:   prefsService,
		MediaService:   mediaService,
		Logger:         log,
		Config:         cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		sweepJob:   sweepJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	sweepCtx, cancel := context.WithCancel(context.Background())
	a.stopSweep = cancel
	go a.sweepJob.Run(sweepCtx)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.stopSweep != nil {
		a.stopSweep()
	}
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
