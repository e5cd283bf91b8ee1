package version

const (
	AppName    = "middlemind"
	AppVersion = "0.4.0"
)
