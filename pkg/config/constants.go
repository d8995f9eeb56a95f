package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv = "BILLSYNC_APP_ENV"
	EnvPort   = "BILLSYNC_APP_PORT"

	EnvRedisURL = "BILLSYNC_REDIS_URL"

	EnvDBDSN  = "BILLSYNC_DB_DSN"
	EnvDBHost = "BILLSYNC_DB_HOST"
	EnvDBUser = "BILLSYNC_DB_USER"
	EnvDBName = "BILLSYNC_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
