package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config concentra toda la configuración del proceso.
// Se carga una vez en main y se inyecta; nada lee env vars después de esto.
type Config struct {
	AppEnv string
	Port   string

	// DSN de Postgres. Vacío => repos in-memory (modo dev).
	DBDSN string

	JWTSecret string

	// CookieSecure activa Secure + SameSite=None en la cookie de sesión
	// (deploy cross-site detrás de HTTPS). En dev queda Lax sin Secure.
	CookieSecure bool

	StripeSecretKey string

	LogLevel string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	RequestTimeout   time.Duration
}

// Load lee .env (si existe) y arma Config desde el entorno.
func Load() (Config, error) {
	// .env es opcional; en deploy las vars vienen del entorno real.
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBDSN:            os.Getenv("DB_DSN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CookieSecure:     getEnvBool("COOKIE_SECURE", false),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 5)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 10)),
		RequestTimeout:   time.Second * time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 15)),
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
