package config

const (
	EnvPrefix = "ECOMLYTICS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv           = "ECOMLYTICS_APP_ENV"
	EnvPort             = "ECOMLYTICS_APP_PORT"
	EnvLogLevel         = "ECOMLYTICS_LOG_LEVEL"
	EnvMaxUploadBytes   = "ECOMLYTICS_DATASET_MAX_UPLOAD_BYTES"
	EnvDefaultTopN      = "ECOMLYTICS_INSIGHTS_DEFAULT_TOP_N"
	EnvNarrativeAPIKey  = "ECOMLYTICS_NARRATIVE_API_KEY"
	EnvNarrativeBaseURL = "ECOMLYTICS_NARRATIVE_BASE_URL"
	EnvNarrativeTimeout = "ECOMLYTICS_NARRATIVE_TIMEOUT"
	EnvMetricsNamespace = "ECOMLYTICS_METRICS_NAMESPACE"
)
