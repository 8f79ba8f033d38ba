package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Credentials for the outbound
// shims (weather, LLM, SMTP, SMS, broker) are optional: an empty value
// disables the shim and the callers degrade to their fallbacks.
type Config struct {
	Env    string // application environment (dev, prod)
	Port   string // HTTP port to listen on
	DBPath string // path of the SQLite database file

	JWTSecret      string // secret used to sign session tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	WeatherAPIKey  string // OpenWeatherMap API key
	WeatherBaseURL string // override for tests; empty means the public API

	LLMEndpoint string // OpenAI-compatible endpoint base URL
	LLMAPIKey   string // LLM API key
	LLMModel    string // chat model name

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// ReminderEmail receives task-reminder mail. The legacy system had a
	// single hard-wired recipient; kept as explicit configuration here.
	ReminderEmail string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	AMQPURL string // RabbitMQ URL for the notification queue
}

// Load reads configuration from the environment, after sourcing a .env
// file when present. Only JWT_SECRET is mandatory; everything else has a
// development default or is an optional shim credential.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:    get("APP_ENV", "dev"),
		Port:   get("APP_PORT", "8080"),
		DBPath: get("DB_PATH", "farmkeep.db"),

		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   getInt("ACCESS_TOKEN_TTL_MIN", 60),
		RefreshTTLDays: getInt("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:     getInt("BCRYPT_COST", 10),

		WeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		WeatherBaseURL: os.Getenv("OPENWEATHER_BASE_URL"),

		LLMEndpoint: os.Getenv("LLM_ENDPOINT"),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),
		LLMModel:    get("LLM_MODEL", "gpt-4o-mini"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		ReminderEmail: os.Getenv("REMINDER_EMAIL"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		AMQPURL: os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func getDur(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
