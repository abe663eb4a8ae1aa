package config

const (
	// AppName is the name of the application.
	AppName = "porter"
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// DataDir is the directory that the durable stores live in.
	DataDir string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string
)
