package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hireprompt-backend/internal/auth"
	"hireprompt-backend/internal/extract"
	"hireprompt-backend/internal/identity"
	"hireprompt-backend/internal/jobspecs"
	"hireprompt-backend/internal/llm"
	"hireprompt-backend/internal/llm/gemini"
	"hireprompt-backend/internal/llm/openai"
	"hireprompt-backend/internal/profiles"
	"hireprompt-backend/internal/questions"
	"hireprompt-backend/internal/queue"
	"hireprompt-backend/internal/resumes"
	"hireprompt-backend/internal/services/health"
	sharedauth "hireprompt-backend/internal/shared/auth"
	"hireprompt-backend/internal/shared/config"
	"hireprompt-backend/internal/shared/server"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/storage/db"
	"hireprompt-backend/internal/shared/storage/kv"
	"hireprompt-backend/internal/shared/storage/object"
	localstore "hireprompt-backend/internal/shared/storage/object/local"
	miniostore "hireprompt-backend/internal/shared/storage/object/minio"
	s3store "hireprompt-backend/internal/shared/storage/object/s3"
	"hireprompt-backend/internal/shared/telemetry"
	"hireprompt-backend/internal/subscriptions"
	"hireprompt-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Store  object.ObjectStore
	Queue  queue.Client
	KV     kv.Store
	LLM    llm.Client

	Issuer      *sharedauth.Issuer
	Revocations *sharedauth.Revocations

	UsersService         *users.Service
	ResumesService       *resumes.Service
	JobSpecsService      *jobspecs.Service
	QuestionsService     *questions.Service
	SubscriptionsService *subscriptions.Service
	AuthService          *auth.Service
	GoogleAuth           *auth.GoogleService
	Health               *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisClient, kvStore, err := buildKV(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  redisClient,
		Store:  store,
		Queue:  queueClient,
		KV:     kvStore,
		LLM:    llmClient,
	}
	buildServices(app)

	limiter := middleware.NewRateLimiter(nil)
	generateLimit := middleware.RateLimit("generate", middleware.PerMinute(cfg.RateLimitGeneratePerMin), limiter)

	authHandler := auth.NewHandler(app.AuthService)
	subsHandler := subscriptions.NewHandler(app.SubscriptionsService)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		Issuer:      app.Issuer,
		Revocations: app.Revocations,
		Health:      app.Health,
		Public:      []server.PublicRoutes{authHandler, subsHandler},
		Open:        []server.Routes{app.GoogleAuth},
		Private: []server.Routes{
			authHandler,
			users.NewHandler(app.UsersService),
			resumes.NewHandler(app.ResumesService),
			jobspecs.NewHandler(app.JobSpecsService),
			questions.NewHandler(app.QuestionsService, generateLimit),
			subsHandler,
		},
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"database": sqlDB != nil,
		"storage":  cfg.ObjectStoreType,
		"llm":      llm.Provider(llmClient),
		"identity": cfg.IdentityProvider,
		"queue":    cfg.QueueProvider,
	})
	return app, nil
}

// Close releases pooled connections.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	return errors.Join(errs...)
}

// NewLLMClient builds the configured provider. A nil client (no error)
// means the deterministic offline fallbacks are used.
func NewLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	key := strings.TrimSpace(cfg.LLMAPIKey())
	if key == "" {
		if cfg.LLMProvider != "mock" {
			telemetry.Warn("bootstrap.llm_credential_missing", map[string]any{"provider": cfg.LLMProvider})
		}
		return nil, nil
	}
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(ctx, key, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		client, err := openai.NewClient(key, cfg.LLMModel, openai.WithTimeout(cfg.LLMTimeout))
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, nil
	}
}

// NewExtractor builds the PDF extractor honoring the upload bound.
func NewExtractor(cfg config.Config) *extract.PDFExtractor {
	return extract.New(cfg.MaxUploadBytes)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	local := localstore.New(cfg.LocalStoreDir)

	var primary object.ObjectStore
	switch cfg.ObjectStoreType {
	case "s3":
		s, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		primary = s
	case "minio":
		s, err := miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			if !isDevLike(cfg.Env) {
				return nil, err
			}
			// Every upload will take the local fallback.
			telemetry.Warn("bootstrap.minio_unavailable", map[string]any{"error": err})
		} else {
			primary = s
		}
	}
	return object.NewFallback(primary, local, cfg.BlobTimeout), nil
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if cfg.QueueProvider != "sqs" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func buildKV(ctx context.Context, cfg config.Config) (*redis.Client, kv.Store, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, kv.NewMemoryStore(), nil
	}
	client, err := kv.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err})
			return nil, kv.NewMemoryStore(), nil
		}
		return nil, nil, err
	}
	return client, &kv.RedisStore{Client: client, Prefix: "hireprompt:"}, nil
}

func buildAuthenticator(app *App) identity.Authenticator {
	if app.Config.IdentityProvider == "gotrue" {
		return identity.NewGoTrue(app.Config.GoTrueURL, app.Config.GoTrueAPIKey, app.Config.IdentityTimeout)
	}
	var creds identity.CredentialRepo = identity.NewMemoryCredentialRepo()
	if app.DB != nil {
		creds = &identity.PGCredentialRepo{DB: app.DB}
	}
	return identity.NewLocal(creds)
}

func buildServices(app *App) {
	var (
		userRepo    users.Repo         = users.NewMemoryRepo()
		resumeRepo  resumes.Repo       = resumes.NewMemoryRepo()
		jobSpecRepo jobspecs.Repo      = jobspecs.NewMemoryRepo()
		setRepo     questions.Repo     = questions.NewMemoryRepo()
		subRepo     subscriptions.Repo = subscriptions.NewMemoryRepo()
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		jobSpecRepo = &jobspecs.PGRepo{DB: app.DB}
		setRepo = &questions.PGRepo{DB: app.DB}
		subRepo = &subscriptions.PGRepo{DB: app.DB}
	}

	app.Issuer = sharedauth.NewIssuer(app.Config.JWTSecret, app.Config.JWTTTL)
	app.Revocations = &sharedauth.Revocations{Store: app.KV}

	app.UsersService = users.NewService(userRepo)
	app.ResumesService = &resumes.Service{
		Store:      app.Store,
		Repo:       resumeRepo,
		Users:      app.UsersService,
		Extractor:  NewExtractor(app.Config),
		Normalizer: profiles.NewNormalizer(app.LLM, app.Config.NormalizeMaxInputRune),
		Queue:      app.Queue,
		MaxBytes:   app.Config.MaxUploadBytes,
	}
	app.JobSpecsService = jobspecs.NewService(jobSpecRepo)
	app.QuestionsService = &questions.Service{
		Users:     app.UsersService,
		Documents: app.ResumesService,
		JobSpecs:  app.JobSpecsService,
		Generator: questions.NewGenerator(app.LLM),
		Repo:      setRepo,
		Provider:  llm.Provider(app.LLM),
		Model:     llm.Model(app.LLM),
	}
	app.SubscriptionsService = subscriptions.NewService(subRepo, app.UsersService)
	app.AuthService = auth.NewService(buildAuthenticator(app), app.UsersService, app.Issuer, app.Revocations)
	app.GoogleAuth = auth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.KV,
		app.AuthService,
	)
	app.Health = health.NewService(app.DB, app.Config.ObjectStoreType, llm.Provider(app.LLM))
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
