package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv string
	Debug  bool

	ServerHost string
	ServerPort string
	StaticDir  string

	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBAutoMigrate bool

	RedisURL string

	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	SessionSecret     string
	CORSAllowedOrigin []string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPTLS      bool
	EmailFrom    string

	RateLimitPerMinute int
	RateLimitBurst     int
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, a .env file and the process environment, in increasing order of
// precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	file := map[string]string{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		file, err = readFile(path)
		if err != nil {
			return nil, err
		}
	}

	return fromSource(source{file: file})
}

// source resolves a key from the environment first, then from the YAML file.
type source struct {
	file map[string]string
	errs []string
}

func (s *source) str(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if value, exists := s.file[key]; exists {
		return value
	}
	return defaultVal
}

func (s *source) integer(key string, defaultVal int) int {
	raw := s.str(key, "")
	if raw == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		s.errs = append(s.errs, fmt.Sprintf("%s: %q is not an integer", key, raw))
		return defaultVal
	}
	return value
}

func (s *source) boolean(key string, defaultVal bool) bool {
	raw := s.str(key, "")
	if raw == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		s.errs = append(s.errs, fmt.Sprintf("%s: %q is not a boolean", key, raw))
		return defaultVal
	}
	return value
}

func (s *source) list(key string, defaultVal []string) []string {
	raw := s.str(key, "")
	if raw == "" {
		return defaultVal
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func fromSource(s source) (*Config, error) {
	cfg := &Config{
		AppEnv:     s.str("APP_ENV", "development"),
		Debug:      s.boolean("DEBUG", false),
		ServerHost: s.str("SERVER_HOST", "0.0.0.0"),
		ServerPort: s.str("SERVER_PORT", "8080"),
		StaticDir:  s.str("STATIC_DIR", "static"),

		DatabaseURL:   s.str("DATABASE_URL", ""),
		DBHost:        s.str("DB_HOST", "localhost"),
		DBPort:        s.str("DB_PORT", "5432"),
		DBUser:        s.str("DB_USER", "kanban"),
		DBPassword:    s.str("DB_PASSWORD", "kanban"),
		DBName:        s.str("DB_NAME", "simple_kanban"),
		DBAutoMigrate: s.boolean("DB_AUTO_MIGRATE", true),

		RedisURL: s.str("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:       s.str("JWT_SECRET", "supersecretkey"),
		AccessTokenTTL:  time.Duration(s.integer("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: time.Duration(s.integer("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		SessionSecret:   s.str("SESSION_SECRET", "supersessionkey"),
		CORSAllowedOrigin: s.list("BACKEND_CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:8000",
			"http://localhost:8080",
		}),

		SMTPHost:     s.str("SMTP_HOST", "localhost"),
		SMTPPort:     s.integer("SMTP_PORT", 587),
		SMTPUser:     s.str("SMTP_USER", ""),
		SMTPPassword: s.str("SMTP_PASSWORD", ""),
		SMTPTLS:      s.boolean("SMTP_TLS", true),
		EmailFrom:    s.str("EMAIL_FROM", "noreply@simple-kanban.local"),

		RateLimitPerMinute: s.integer("RATE_LIMIT_PER_MINUTE", 100),
		RateLimitBurst:     s.integer("RATE_LIMIT_BURST", 200),
	}

	if cfg.AccessTokenTTL <= 0 {
		s.errs = append(s.errs, "JWT_ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if cfg.RefreshTokenTTL <= 0 {
		s.errs = append(s.errs, "JWT_REFRESH_TOKEN_EXPIRE_DAYS must be positive")
	}
	if cfg.JWTSecret == "" {
		s.errs = append(s.errs, "JWT_SECRET must not be empty")
	}

	if len(s.errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(s.errs, "; "))
	}
	return cfg, nil
}

// readFile loads a flat YAML mapping of configuration keys. Keys are matched
// case-insensitively against the environment variable names.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			values[strings.ToUpper(key)] = strings.Join(parts, ",")
		case nil:
			values[strings.ToUpper(key)] = ""
		default:
			values[strings.ToUpper(key)] = fmt.Sprint(v)
		}
	}
	return values, nil
}

// DSN returns the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
