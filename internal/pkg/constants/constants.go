package constants

const (
	CookieKeySession = "hcdash_session"

	CtxKeySessionID = "session_id"
)

// viper keys
const (
	ViperHTTPAddrKey             = "http.addr"
	ViperHTTPAllowOriginsKey     = "http.allow_origins"
	ViperAnalysisDelayKey        = "analysis.delay"
	ViperSessionSecretKey        = "session.secret"
	ViperSessionTTLKey           = "session.ttl"
	ViperSessionSweepIntervalKey = "session.sweep_interval"
	ViperLogLevelKey             = "log.level"
	ViperLogFormatKey            = "log.format"
)

// MIMETypeCSV is the only declared type accepted from drag-and-drop uploads.
const MIMETypeCSV = "text/csv"
