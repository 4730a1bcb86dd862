package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CorpusSourceFile     = "file"
	CorpusSourceGCS      = "gcs"
	CorpusSourcePostgres = "postgres"
)

type App struct {
	Port     string
	GinMode  string
	LogLevel string

	CorpusSource   string
	ArtifactDir    string
	ArtifactBucket string
	ArtifactPrefix string

	LevelVocabularyFile string
	SkillKeywordsCSV    string

	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
}

// LoadApp reads .env (if present) and the process environment.
func LoadApp() App {
	_ = godotenv.Load()

	return App{
		Port:     envOr("PORT", "8080"),
		GinMode:  os.Getenv("GIN_MODE"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		CorpusSource:   strings.ToLower(envOr("CORPUS_SOURCE", CorpusSourceFile)),
		ArtifactDir:    envOr("ARTIFACT_DIR", "model_artifacts"),
		ArtifactBucket: os.Getenv("ARTIFACT_BUCKET"),
		ArtifactPrefix: os.Getenv("ARTIFACT_PREFIX"),

		LevelVocabularyFile: os.Getenv("LEVEL_VOCABULARY_FILE"),
		SkillKeywordsCSV:    envOr("SKILL_KEYWORDS_CSV", "data/skill_keywords.csv"),

		CacheTTL:       envDuration("RECOMMEND_CACHE_TTL", 10*time.Minute),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),
		CORSOrigins:    envList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		JWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
		JWTIssuer:      os.Getenv("SUPABASE_JWT_ISSUER"),
		JWTAudience:    os.Getenv("SUPABASE_JWT_AUDIENCE"),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
