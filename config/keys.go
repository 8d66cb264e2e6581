package config

const (
	delimiter = "."

	ConfigPrefix = "grimoire"

	ConfigLogPrefix   = ConfigPrefix + delimiter + "log"
	ConfigLogLevel    = ConfigLogPrefix + delimiter + "level"
	ConfigLogEncoding = ConfigLogPrefix + delimiter + "encoding"

	ConfigRetryPrefix      = ConfigPrefix + delimiter + "retry"
	ConfigRetryMaxAttempts = ConfigRetryPrefix + delimiter + "max_attempts"

	ConfigValidationPrefix   = ConfigPrefix + delimiter + "validation"
	ConfigValidationMinPower = ConfigValidationPrefix + delimiter + "min_power"

	ConfigDispatchPrefix = ConfigPrefix + delimiter + "dispatch"
	ConfigDispatchStrict = ConfigDispatchPrefix + delimiter + "strict"

	ConfigTracingPrefix  = ConfigPrefix + delimiter + "tracing"
	ConfigTracingEnabled = ConfigTracingPrefix + delimiter + "enabled"
)
