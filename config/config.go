package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-ordering/services"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config is read from the environment once at startup; .env is loaded by main.
type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	CORSOrigin string

	DBDriver    string
	DatabaseDSN string

	JWTSecret string
	JWTTTL    time.Duration

	StatusPolicy         services.StatusPolicy
	ModifierOptionPolicy services.OptionPolicy
	SearchLimit          int
	RateLimitPerSecond   int
	LoginAttemptsPerMin  int

	SeedDemo          bool
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CORSOrigin:           getEnv("CORS_ORIGIN", "*"),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseDSN:          getEnv("DB_DSN", "restaurant.db"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SeedAdminEmail:       getEnv("SEED_ADMIN_EMAIL", "admin@zenacham.com"),
		SeedAdminPassword:    getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		StatusPolicy:         services.StatusPolicy(getEnv("ORDER_STATUS_POLICY", string(services.StatusPolicyPermissive))),
		ModifierOptionPolicy: services.OptionPolicy(getEnv("MODIFIER_OPTION_POLICY", string(services.OptionPolicyStrict))),
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = getInt("SEARCH_LIMIT", services.DefaultSearchLimit); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerSecond, err = getInt("RATE_LIMIT_PER_SECOND", 50); err != nil {
		return nil, err
	}
	if cfg.LoginAttemptsPerMin, err = getInt("LOGIN_ATTEMPTS_PER_MINUTE", 5); err != nil {
		return nil, err
	}
	if cfg.SeedDemo, err = getBool("SEED_DEMO", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBDriver != DriverMySQL && c.DBDriver != DriverSQLite {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverSQLite, c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if _, err := services.ParseStatusPolicy(string(c.StatusPolicy)); err != nil {
		return err
	}
	if _, err := services.ParseOptionPolicy(string(c.ModifierOptionPolicy)); err != nil {
		return err
	}
	if c.SearchLimit <= 0 {
		return errors.New("SEARCH_LIMIT must be positive")
	}
	if c.RateLimitPerSecond <= 0 || c.LoginAttemptsPerMin <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}

// InitDB opens the configured database. SQLite gets a single connection since
// it allows one writer at a time.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DatabaseDSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return logger.Info
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	}
	return logger.Warn
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
