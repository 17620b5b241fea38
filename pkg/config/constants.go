package config

// EnvPrefix is empty because every variable already carries the UNIEATS_
// prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside the struct tags (tests,
// legacy DSN assembly).
const (
	EnvAppEnv     = "UNIEATS_APP_ENV"
	EnvPort       = "UNIEATS_APP_PORT"
	EnvDBDSN      = "UNIEATS_DB_DSN"
	EnvDBHost     = "UNIEATS_DB_HOST"
	EnvDBUser     = "UNIEATS_DB_USER"
	EnvDBName     = "UNIEATS_DB_NAME"
	EnvRedisURL   = "UNIEATS_REDIS_URL"
	EnvJWTSecret  = "UNIEATS_JWT_SECRET"
	EnvJWTIssuer  = "UNIEATS_JWT_ISSUER"
	EnvJWTExpMins = "UNIEATS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
