package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IsProd       = false
	LogLevelProd = slog.LevelInfo
	TraceIDKey   = "traceId"

	//rate limiting is deferred: the limiter stays wired but off by default
	RateLimitEnabled        = false
	RateLimitPerSecond      = 2
	BurstRateLimitPerSecond = 5

	//server timeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobExecutionTimeout             = 90 * time.Second

	//retrieval pipeline defaults
	//chunk and context budgets are measured in CHARACTERS, not tokens
	DefaultMaxChunkChars   = 800
	DefaultMaxContextChars = 4000
	DefaultTopK            = 3

	//model invocation
	DefaultModelName     = "llama2"
	DefaultModelBackend  = "exec" //exec | httpapi | openai
	DefaultModelEndpoint = "http://127.0.0.1:11434"
	OllamaBinary         = "ollama"
	GenerateTimeout      = 30 * time.Second
	PageExtractTimeout   = 10 * time.Second

	//uploads
	UploadDirName     = "finqa-uploads"
	MaxUploadSizeByte = 32 << 20

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DBs we can use
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour
)

// ModelName reads MODEL_NAME, falling back to the default local model.
func ModelName() string {
	return getEnv("MODEL_NAME", DefaultModelName)
}

// ModelBackend reads MODEL_BACKEND: exec, httpapi or openai.
func ModelBackend() string {
	return getEnv("MODEL_BACKEND", DefaultModelBackend)
}

// ModelEndpoint is the base URL used by the httpapi and openai backends.
func ModelEndpoint() string {
	return getEnv("MODEL_ENDPOINT", DefaultModelEndpoint)
}

func TopK() int {
	return getEnvInt("TOP_K", DefaultTopK)
}

func MaxChunkChars() int {
	return getEnvInt("MAX_CHUNK_CHARS", DefaultMaxChunkChars)
}

func MaxContextChars() int {
	return getEnvInt("MAX_CONTEXT_CHARS", DefaultMaxContextChars)
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
