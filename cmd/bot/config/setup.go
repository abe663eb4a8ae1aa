package config

import (
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/porter/pkg/dataaccess"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/Jacobbrewer1/porter/pkg/store"
	"github.com/caarlos0/env/v11"
)

// values is the environment configuration for the bot.
type values struct {
	// BotToken is the token for the bot.
	BotToken string `env:"BOT_TOKEN,required"`

	// ApplicationId is the ID of the application.
	ApplicationId string `env:"APPLICATION_ID,required"`

	// DataDir is the directory that the durable stores live in.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string `env:"MONITORING_PORT" envDefault:"8080"`
}

// Parse reads the environment configuration and opens the durable stores.
// Missing required values are an unrecoverable startup error.
func Parse(l *slog.Logger) {
	v := new(values)
	if err := env.Parse(v); err != nil {
		l.Error("Not all required environment variables have been provided", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}

	BotToken = v.BotToken
	ApplicationId = v.ApplicationId
	DataDir = v.DataDir
	MonitoringPort = v.MonitoringPort

	l.Debug("All required environment variables have been provided")

	dataaccess.Open(l, DataDir, store.DefaultDebounce)
	l.Debug("Opened durable stores", slog.String("dir", DataDir))
}
