package exitcode

const (
	Success     = 0
	UsageError  = 1
	ConfigError = 2
	ServerError = 3
	RemoteError = 4
)
