package internal

const (
	DotEnvPath    = "./.env"
	ConfigPath    = "config.yaml"
	SessionCookie = "session"
)
