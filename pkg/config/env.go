package config

// EnvPrefix is passed to envconfig; the struct tags carry the full names so
// the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "MILKROUTE_APP_ENV"
	EnvPort     = "MILKROUTE_APP_PORT"
	EnvDBDSN    = "MILKROUTE_DB_DSN"
	EnvDBHost   = "MILKROUTE_DB_HOST"
	EnvDBUser   = "MILKROUTE_DB_USER"
	EnvDBName   = "MILKROUTE_DB_NAME"
	EnvRedisURL = "MILKROUTE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
