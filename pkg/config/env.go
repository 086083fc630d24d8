package config

// EnvPrefix is passed to envconfig; variable names carry the DOXA_ prefix
// explicitly in their struct tags, so the processing prefix stays empty.
const EnvPrefix = ""

// App environments.
const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared between Load and the tests.
const (
	EnvAppEnv     = "DOXA_APP_ENV"
	EnvPort       = "DOXA_APP_PORT"
	EnvDBDSN      = "DOXA_DB_DSN"
	EnvDBHost     = "DOXA_DB_HOST"
	EnvDBUser     = "DOXA_DB_USER"
	EnvDBName     = "DOXA_DB_NAME"
	EnvRedisURL   = "DOXA_REDIS_URL"
	EnvJWTSecret  = "DOXA_JWT_SECRET"
	EnvJWTIssuer  = "DOXA_JWT_ISSUER"
	EnvJWTExpMins = "DOXA_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{
	EnvDBHost,
	EnvDBUser,
	EnvDBName,
}
