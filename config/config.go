package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/transport-senegal/api/logger"
)

// AppConfig is the typed view of the environment.
type AppConfig struct {
	Port        string
	Env         string
	DatabaseURL string
	RedisURL    string

	AllowedOrigins []string

	Driver     DriverConfig
	SMTP       SMTPConfig
	AI         AIConfig
	RateLimits RateLimitConfig
	Admin      AdminConfig
	Telegram   TelegramConfig

	BadWordsFile string
}

type DriverConfig struct {
	Name     string
	WhatsApp string
	Email    string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether transactional email can be sent.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type ProviderKey struct {
	APIKey string
	Model  string
}

type AIConfig struct {
	OpenAI    ProviderKey
	Anthropic ProviderKey
	Gemini    ProviderKey
	Mistral   ProviderKey
	Timeout   time.Duration
	// Fallbacks maps a provider name to the one tried when it fails.
	Fallbacks map[string]string
}

type RateLimitConfig struct {
	Default string
	Quote   string
	Chat    string
	Email   string
}

type AdminConfig struct {
	JWTSecret    string
	PasswordHash string
}

// Enabled reports whether the admin API is reachable at all.
func (a AdminConfig) Enabled() bool {
	return a.JWTSecret != "" && a.PasswordHash != ""
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

var (
	loadOnce sync.Once
	cfgOnce  sync.Once
	current  *AppConfig
)

// LoadEnv loads a .env file when present, or the given files. A missing
// default .env is fine in production.
func LoadEnv(files ...string) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			logger.WarnLogger.Warnf("Failed to load env files %v: %v", files, err)
		}
		return
	}
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			logger.InfoLogger.Info("No .env file found, relying on process environment")
		}
	})
}

// Get returns the process-wide configuration, built on first use.
func Get() *AppConfig {
	cfgOnce.Do(func() {
		LoadEnv()
		current = Load(viper.New())
	})
	return current
}

// Load builds an AppConfig from the given viper instance bound to the environment.
func Load(v *viper.Viper) *AppConfig {
	v.AutomaticEnv()

	v.SetDefault("PORT", "8081")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("MISTRAL_MODEL", "mistral-small-latest")
	v.SetDefault("AI_TIMEOUT_SECONDS", 20)
	v.SetDefault("RATE_LIMIT_DEFAULT", "60-1m")
	v.SetDefault("RATE_LIMIT_QUOTE", "10-1m")
	v.SetDefault("RATE_LIMIT_CHAT", "20-1m")
	v.SetDefault("RATE_LIMIT_EMAIL", "5-10m")
	v.SetDefault("DRIVER_NAME", "Transport Sénégal")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg := &AppConfig{
		Port:           v.GetString("PORT"),
		Env:            v.GetString("APP_ENV"),
		DatabaseURL:    strings.TrimSpace(v.GetString("DATABASE_URL")),
		RedisURL:       strings.TrimSpace(v.GetString("REDIS_URL")),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Driver: DriverConfig{
			Name:     v.GetString("DRIVER_NAME"),
			WhatsApp: v.GetString("DRIVER_WHATSAPP"),
			Email:    v.GetString("DRIVER_EMAIL"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("FROM_EMAIL"),
		},
		AI: AIConfig{
			OpenAI:    ProviderKey{APIKey: v.GetString("OPENAI_API_KEY"), Model: v.GetString("OPENAI_MODEL")},
			Anthropic: ProviderKey{APIKey: v.GetString("ANTHROPIC_API_KEY"), Model: v.GetString("ANTHROPIC_MODEL")},
			Gemini:    ProviderKey{APIKey: v.GetString("GEMINI_API_KEY"), Model: v.GetString("GEMINI_MODEL")},
			Mistral:   ProviderKey{APIKey: v.GetString("MISTRAL_API_KEY"), Model: v.GetString("MISTRAL_MODEL")},
			Timeout:   time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
			Fallbacks: parsePairs(v.GetString("AI_FALLBACKS")),
		},
		RateLimits: RateLimitConfig{
			Default: v.GetString("RATE_LIMIT_DEFAULT"),
			Quote:   v.GetString("RATE_LIMIT_QUOTE"),
			Chat:    v.GetString("RATE_LIMIT_CHAT"),
			Email:   v.GetString("RATE_LIMIT_EMAIL"),
		},
		Admin: AdminConfig{
			JWTSecret:    v.GetString("ADMIN_JWT_SECRET"),
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:   v.GetInt64("TELEGRAM_CHAT_ID"),
		},
		BadWordsFile: strings.TrimSpace(v.GetString("BADWORDS_FILE")),
	}

	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 20 * time.Second
	}
	if cfg.SMTP.From == "" && cfg.SMTP.Username != "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	return cfg
}

// splitList parses comma separated env values; viper only splits on spaces.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePairs reads "openai:mistral,gemini:openai" into a map. "=" is also
// accepted as the separator.
func parsePairs(raw string) map[string]string {
	out := map[string]string{}
	for _, part := range splitList(raw) {
		from, to, ok := strings.Cut(part, ":")
		if !ok {
			from, to, ok = strings.Cut(part, "=")
		}
		from, to = strings.ToLower(strings.TrimSpace(from)), strings.ToLower(strings.TrimSpace(to))
		if ok && from != "" && to != "" && from != to {
			out[from] = to
		}
	}
	return out
}
