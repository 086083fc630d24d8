package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.App.IsProd()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DOXA_APP_ENV" required:"true"`
	Port         string `envconfig:"DOXA_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"DOXA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DOXA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DOXA_DB_DSN"`
	Driver string `envconfig:"DOXA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DOXA_DB_HOST"`
	LegacyPort     int    `envconfig:"DOXA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DOXA_DB_USER"`
	LegacyPassword string `envconfig:"DOXA_DB_PASSWORD"`
	LegacyName     string `envconfig:"DOXA_DB_NAME"`
	LegacySSLMode  string `envconfig:"DOXA_DB_SSLMODE"`

	MaxOpenConns    int           `envconfig:"DOXA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DOXA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DOXA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DOXA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DOXA_REDIS_URL"`
	Address      string        `envconfig:"DOXA_REDIS_ADDR"`
	Password     string        `envconfig:"DOXA_REDIS_PASSWORD"`
	DB           int           `envconfig:"DOXA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DOXA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DOXA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DOXA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DOXA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DOXA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DOXA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DOXA_JWT_ISSUER" default:"doxa-api"`
	ExpirationMinutes int    `envconfig:"DOXA_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the configured token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"DOXA_BCRYPT_COST" default:"10"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DOXA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DOXA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DOXA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DOXA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DOXA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DOXA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

func (db *DBConfig) ensureDSN(isProd bool) error {
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

	// Managed Postgres requires TLS in production; local dev runs without it.
	sslMode := db.LegacySSLMode
	if sslMode == "" {
		sslMode = "disable"
		if isProd {
			sslMode = "require"
		}
	}
	q := u.Query()
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()

	db.DSN = u.String()
	return nil
}
