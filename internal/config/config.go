package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	System struct {
		IsProd bool   // MODE=p... включает production-логгер
		Listen string // адрес, на котором слушает HTTP сервер
	}
	Security struct {
		SecretKey      string        // ключ подписи cookie сессии
		SessionTTL     time.Duration // время жизни сессии
		CookieSecure   bool          // выставлять ли флаг Secure у cookie
		CSRF           bool          // включена ли проверка CSRF токена у форм
		PasswordHasher string        // bcrypt или argon2id
	}
	Database struct {
		Driver   string // postgres или sqlite3
		Host     string
		User     string
		Password string
		Name     string
		Port     string
		SSLMode  string
		Path     string // путь к файлу sqlite
	}
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// Load собирает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	cfg := &Config{}

	mode, exist := os.LookupEnv("MODE")
	cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	cfg.System.Listen = getEnvDefault("LISTEN", ":5002")

	secret, exist := os.LookupEnv("SECRET_KEY")
	if !exist || secret == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable not set")
	}
	cfg.Security.SecretKey = secret

	ttl, err := time.ParseDuration(getEnvDefault("SESSION_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.Security.SessionTTL = ttl

	if cfg.Security.CookieSecure, err = getEnvBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.Security.CSRF, err = getEnvBool("CSRF", true); err != nil {
		return nil, err
	}

	cfg.Security.PasswordHasher = getEnvDefault("PASSWORD_HASHER", "bcrypt")

	cfg.Database.Driver = getEnvDefault("DB_DRIVER", "postgres")
	switch cfg.Database.Driver {
	case "postgres":
		cfg.Database.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.Database.User = os.Getenv("DB_USER")
		cfg.Database.Password = os.Getenv("DB_PASSWORD")
		cfg.Database.Name = os.Getenv("DB_NAME")
		cfg.Database.Port = getEnvDefault("DB_PORT", "5432")
		cfg.Database.SSLMode = getEnvDefault("DB_SSLMODE", "disable")
	case "sqlite3":
		cfg.Database.Path = getEnvDefault("DB_PATH", "posts.db")
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.Database.Driver)
	}

	return cfg, nil
}

// DSN возвращает строку подключения для выбранного драйвера.
func (c *Config) DSN() string {
	if c.Database.Driver == "sqlite3" {
		return c.Database.Path
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

func getEnvDefault(key, def string) string {
	if value, exist := os.LookupEnv(key); exist && value != "" {
		return value
	}
	return def
}

func getEnvBool(key string, def bool) (bool, error) {
	value, exist := os.LookupEnv(key)
	if !exist || value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
