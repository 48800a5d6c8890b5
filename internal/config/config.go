package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/0xFF-test/TikRewards/internal/engine"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	// MainAccount is the promoted TikTok account users are asked to follow.
	MainAccount string

	Engine engine.Config
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MainAccount: getEnv("TIKTOK_MAIN_ACCOUNT", "@0xFinanceFirst"),
	}

	eng, err := loadEngine()
	if err != nil {
		return nil, err
	}
	cfg.Engine = eng

	return cfg, nil
}

// loadEngine assembles the rule parameters into one immutable struct so the
// engine never reads the environment itself.
func loadEngine() (engine.Config, error) {
	defaults := engine.DefaultConfig()
	eng := defaults

	var err error
	if eng.BaseWatchPoints, err = getEnvInt("BASE_WATCH_POINTS", defaults.BaseWatchPoints); err != nil {
		return eng, err
	}
	if eng.LikePoints, err = getEnvInt("LIKE_POINTS", defaults.LikePoints); err != nil {
		return eng, err
	}
	if eng.CommentPoints, err = getEnvInt("COMMENT_POINTS", defaults.CommentPoints); err != nil {
		return eng, err
	}
	if eng.CompletionMultiplier, err = getEnvFloat("COMPLETION_MULTIPLIER", defaults.CompletionMultiplier); err != nil {
		return eng, err
	}
	if eng.MinimumPointsToSubmit, err = getEnvInt("MINIMUM_POINTS_TO_SUBMIT", defaults.MinimumPointsToSubmit); err != nil {
		return eng, err
	}

	if eng.BaseCooldownVideos, err = getEnvInt("BASE_COOLDOWN_VIDEOS", defaults.BaseCooldownVideos); err != nil {
		return eng, err
	}
	if eng.BaseCooldownSeconds, err = getEnvInt("BASE_COOLDOWN_SECONDS", defaults.BaseCooldownSeconds); err != nil {
		return eng, err
	}
	if eng.FollowCooldownReduction, err = getEnvFloat("FOLLOW_COOLDOWN_REDUCTION", defaults.FollowCooldownReduction); err != nil {
		return eng, err
	}
	if eng.MinimumCooldownSeconds, err = getEnvInt("MINIMUM_COOLDOWN_SECONDS", defaults.MinimumCooldownSeconds); err != nil {
		return eng, err
	}

	if eng.MinVideoLengthSeconds, err = getEnvInt("MIN_VIDEO_LENGTH_SECONDS", defaults.MinVideoLengthSeconds); err != nil {
		return eng, err
	}
	if eng.MaxVideoLengthSeconds, err = getEnvInt("MAX_VIDEO_LENGTH_SECONDS", defaults.MaxVideoLengthSeconds); err != nil {
		return eng, err
	}
	if eng.WatchCompletionThreshold, err = getEnvFloat("WATCH_COMPLETION_THRESHOLD", defaults.WatchCompletionThreshold); err != nil {
		return eng, err
	}

	if eng.FreeSubmissionLimit, err = getEnvInt("FREE_SUBMISSION_LIFETIME_LIMIT", defaults.FreeSubmissionLimit); err != nil {
		return eng, err
	}
	paidWaitMinutes, err := getEnvInt("PAID_SUBMISSION_WAIT_MINUTES", int(defaults.PaidWait/time.Minute))
	if err != nil {
		return eng, err
	}
	eng.PaidWait = time.Duration(paidWaitMinutes) * time.Minute

	sessionTimeoutMinutes, err := getEnvInt("SESSION_TIMEOUT_MINUTES", int(defaults.SessionTimeout/time.Minute))
	if err != nil {
		return eng, err
	}
	eng.SessionTimeout = time.Duration(sessionTimeoutMinutes) * time.Minute

	if penalties := os.Getenv("ABANDONMENT_PENALTIES"); penalties != "" {
		eng.AbandonmentPenalties, err = parseIntList(penalties)
		if err != nil {
			return eng, fmt.Errorf("invalid ABANDONMENT_PENALTIES: %w", err)
		}
	}

	return eng, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
