package dataaccess

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Jacobbrewer1/porter/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/Jacobbrewer1/porter/pkg/store"
)

const (
	// configStoreName is the name of the configuration store file.
	configStoreName = "config.json"

	// ticketStoreName is the name of the tickets store file.
	ticketStoreName = "tickets.json"

	// blacklistStoreName is the name of the blacklist store file.
	blacklistStoreName = "blacklist.json"
)

var (
	// ConfigStore is the durable store for guild configurations.
	ConfigStore *store.Store[entities.ConfigDocument]

	// TicketStore is the durable store for tickets.
	TicketStore *store.Store[entities.TicketsDocument]

	// BlacklistStore is the durable store for blacklists.
	BlacklistStore *store.Store[entities.BlacklistDocument]
)

// Open creates and loads the three durable stores under dir. It never fails;
// missing or corrupt files fall back to empty documents.
func Open(l *slog.Logger, dir string, debounce time.Duration) {
	ConfigStore = store.New(l, filepath.Join(dir, configStoreName), debounce, entities.NewConfigDocument)
	TicketStore = store.New(l, filepath.Join(dir, ticketStoreName), debounce, entities.NewTicketsDocument)
	BlacklistStore = store.New(l, filepath.Join(dir, blacklistStoreName), debounce, entities.NewBlacklistDocument)

	ConfigStore.Load()
	TicketStore.Load()
	BlacklistStore.Load()
}

// FlushAll synchronously flushes every open store. It is best-effort; a
// failed flush is logged and the remaining stores are still flushed.
func FlushAll(l *slog.Logger) {
	if ConfigStore != nil {
		if err := ConfigStore.Close(); err != nil {
			monitoring.StoreFlushFailures.WithLabelValues(configStoreName).Inc()
			l.Error("Error flushing config store", slog.String(logging.KeyError, err.Error()))
		}
	}

	if TicketStore != nil {
		if err := TicketStore.Close(); err != nil {
			monitoring.StoreFlushFailures.WithLabelValues(ticketStoreName).Inc()
			l.Error("Error flushing ticket store", slog.String(logging.KeyError, err.Error()))
		}
	}

	if BlacklistStore != nil {
		if err := BlacklistStore.Close(); err != nil {
			monitoring.StoreFlushFailures.WithLabelValues(blacklistStoreName).Inc()
			l.Error("Error flushing blacklist store", slog.String(logging.KeyError, err.Error()))
		}
	}
}
