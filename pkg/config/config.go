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
	JWT          JWTConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	Catalog      CatalogConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"UNIEATS_APP_ENV" required:"true"`
	Port         string `envconfig:"UNIEATS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"UNIEATS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UNIEATS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"UNIEATS_DB_DSN"`
	Driver string `envconfig:"UNIEATS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"UNIEATS_DB_HOST"`
	LegacyPort     int    `envconfig:"UNIEATS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"UNIEATS_DB_USER"`
	LegacyPassword string `envconfig:"UNIEATS_DB_PASSWORD"`
	LegacyName     string `envconfig:"UNIEATS_DB_NAME"`
	LegacySSLMode  string `envconfig:"UNIEATS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"UNIEATS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"UNIEATS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"UNIEATS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"UNIEATS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"UNIEATS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"UNIEATS_REDIS_ADDR"`
	Password     string        `envconfig:"UNIEATS_REDIS_PASSWORD"`
	DB           int           `envconfig:"UNIEATS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UNIEATS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"UNIEATS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"UNIEATS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UNIEATS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UNIEATS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"UNIEATS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"UNIEATS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"UNIEATS_JWT_EXPIRATION_MINUTES" required:"true"`
}

// CartConfig bounds caller-side input on cart mutations. The aggregate itself
// stays permissive; the HTTP layer enforces these.
type CartConfig struct {
	CommentMaxLen  int `envconfig:"UNIEATS_CART_COMMENT_MAX_LEN" default:"200"`
	MaxItemsPerAdd int `envconfig:"UNIEATS_CART_MAX_QTY_PER_ITEM" default:"50"`
}

type CheckoutConfig struct {
	ServiceFeeBps  int           `envconfig:"UNIEATS_CHECKOUT_SERVICE_FEE_BPS" default:"500"`
	IdempotencyTTL time.Duration `envconfig:"UNIEATS_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type CatalogConfig struct {
	AvailabilityTTL time.Duration `envconfig:"UNIEATS_CATALOG_AVAILABILITY_TTL" default:"5m"`
}

// RateLimitConfig throttles the checkout endpoint. A zero limit disables the
// corresponding dimension.
type RateLimitConfig struct {
	CheckoutWindow    time.Duration `envconfig:"UNIEATS_RATELIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutIPLimit   int           `envconfig:"UNIEATS_RATELIMIT_CHECKOUT_IP_LIMIT" default:"30"`
	CheckoutUserLimit int           `envconfig:"UNIEATS_RATELIMIT_CHECKOUT_USER_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"UNIEATS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"UNIEATS_AUTO_MIGRATE" default:"false"`
}

// ServiceFeeRate exposes the configured fee in basis points, guarding
// against nonsensical values.
func (c CheckoutConfig) ServiceFeeRate() int {
	if c.ServiceFeeBps < 0 {
		return 0
	}
	return c.ServiceFeeBps
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
