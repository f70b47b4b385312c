package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Sheets       SheetsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MILKROUTE_APP_ENV" required:"true"`
	Port         string `envconfig:"MILKROUTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MILKROUTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MILKROUTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MILKROUTE_DB_DSN"`
	Driver string `envconfig:"MILKROUTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MILKROUTE_DB_HOST"`
	LegacyPort     int    `envconfig:"MILKROUTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MILKROUTE_DB_USER"`
	LegacyPassword string `envconfig:"MILKROUTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MILKROUTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MILKROUTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MILKROUTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MILKROUTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MILKROUTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MILKROUTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MILKROUTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MILKROUTE_REDIS_ADDR"`
	Password     string        `envconfig:"MILKROUTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MILKROUTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MILKROUTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MILKROUTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MILKROUTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MILKROUTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MILKROUTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MILKROUTE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MILKROUTE_AUTO_MIGRATE" default:"false"`
}

type SheetsConfig struct {
	// SaveIdempotencyTTL bounds how long a completed sheet save may be
	// replayed from the idempotency store.
	SaveIdempotencyTTL time.Duration `envconfig:"MILKROUTE_SHEETS_SAVE_IDEMPOTENCY_TTL" default:"168h"`
	MaxRowsPerSheet    int           `envconfig:"MILKROUTE_SHEETS_MAX_ROWS" default:"500"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MILKROUTE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
