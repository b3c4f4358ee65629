package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DatabaseURL           string
	AutoMigrate           bool
	ObjectStoreType       string
	LocalStoreDir         string
	AWSRegion             string
	S3Bucket              string
	S3Prefix              string
	SSEKMSKeyID           string
	MinioEndpoint         string
	MinioAccessKey        string
	MinioSecretKey        string
	MinioBucket           string
	MinioUseSSL           bool
	BlobTimeout           time.Duration
	MaxUploadBytes        int64
	NormalizeMaxInputRune int

	LLMProvider  string
	LLMModel     string
	OpenAIAPIKey string
	GeminiAPIKey string
	LLMTimeout   time.Duration

	IdentityProvider   string
	GoTrueURL          string
	GoTrueAPIKey       string
	IdentityTimeout    time.Duration
	JWTSecret          string
	JWTTTL             time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
	RedisURL           string

	QueueProvider     string
	SQSQueueURL       string
	WorkerConcurrency int
	SQSVisibility     time.Duration
	ShutdownTimeout   time.Duration

	RateLimitGeneratePerMin int

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", ".env.local", "cmd/.env")

	llmProvider := normalizeLLMProvider(getEnv("LLM_PROVIDER", "openai"))
	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		DatabaseURL:           os.Getenv("DATABASE_URL"),
		AutoMigrate:           getBool("AUTO_MIGRATE", false),
		ObjectStoreType:       normalizeStoreType(getEnv("OBJECT_STORE_TYPE", getEnv("OBJECT_STORE", "local"))),
		LocalStoreDir:         getEnv("LOCAL_STORAGE_PATH", "./data"),
		AWSRegion:             getEnv("S3_REGION", getEnv("AWS_REGION", "")),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Prefix:              getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:           getEnv("SSE_KMS_KEY_ID", ""),
		MinioEndpoint:         getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:        getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:           getEnv("MINIO_BUCKET", "resumes"),
		MinioUseSSL:           getBool("MINIO_USE_SSL", false),
		BlobTimeout:           time.Duration(getInt("BLOB_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxUploadBytes:        int64(getInt("MAX_UPLOAD_MB", 10)) << 20,
		NormalizeMaxInputRune: getInt("NORMALIZE_MAX_INPUT_CHARS", 60000),

		LLMProvider:  llmProvider,
		LLMModel:     getEnv("LLM_MODEL", defaultModel(llmProvider)),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		LLMTimeout:   time.Duration(getInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,

		IdentityProvider:   normalizeIdentityProvider(getEnv("IDENTITY_PROVIDER", "local")),
		GoTrueURL:          strings.TrimRight(getEnv("GOTRUE_URL", ""), "/"),
		GoTrueAPIKey:       getEnv("GOTRUE_API_KEY", ""),
		IdentityTimeout:    time.Duration(getInt("IDENTITY_TIMEOUT_SECONDS", 15)) * time.Second,
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             time.Duration(getInt("JWT_TTL_MINUTES", 1440)) * time.Minute,
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),

		QueueProvider:     normalizeQueueProvider(getEnv("QUEUE_PROVIDER", "none")),
		SQSQueueURL:       getEnv("SQS_QUEUE_URL", ""),
		WorkerConcurrency: getInt("WORKER_CONCURRENCY", 2),
		SQSVisibility:     time.Duration(getInt("SQS_VISIBILITY_TIMEOUT_SECONDS", 300)) * time.Second,
		ShutdownTimeout:   time.Duration(getInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,

		RateLimitGeneratePerMin: getInt("RATE_LIMIT_GENERATE_PER_MIN", 10),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate reports configuration that cannot boot.
func (c Config) Validate() error {
	var errs []error
	if c.Env == "production" {
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required in production"))
		}
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		}
	}
	if c.ObjectStoreType == "s3" && c.S3Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required when OBJECT_STORE_TYPE=s3"))
	}
	if c.ObjectStoreType == "minio" && c.MinioEndpoint == "" {
		errs = append(errs, errors.New("MINIO_ENDPOINT is required when OBJECT_STORE_TYPE=minio"))
	}
	if c.QueueProvider == "sqs" && c.SQSQueueURL == "" {
		errs = append(errs, errors.New("SQS_QUEUE_URL is required when QUEUE_PROVIDER=sqs"))
	}
	if c.IdentityProvider == "gotrue" && c.GoTrueURL == "" {
		errs = append(errs, errors.New("GOTRUE_URL is required when IDENTITY_PROVIDER=gotrue"))
	}
	return errors.Join(errs...)
}

// LLMAPIKey returns the credential for the configured provider.
func (c Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	default:
		return ""
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "minio", "supabase":
		return "minio"
	default:
		return "local"
	}
}

func normalizeLLMProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google", "googleai":
		return "gemini"
	case "mock", "none":
		return "mock"
	default:
		return "openai"
	}
}

func normalizeIdentityProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gotrue", "supabase":
		return "gotrue"
	default:
		return "local"
	}
}

func normalizeQueueProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqs":
		return "sqs"
	default:
		return "none"
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-2.5-flash"
	case "openai":
		return "gpt-4o"
	default:
		return ""
	}
}
