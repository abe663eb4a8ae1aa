package dataaccess

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/porter/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/Jacobbrewer1/porter/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
)

const guildDalName = "guild_dal"

// GuildDal is the registry of guild configurations. It owns the config
// document; callers never mutate a configuration directly.
type GuildDal interface {
	// Ensure creates a default configuration for the guild if one does not
	// exist. It reports whether a configuration was created.
	Ensure(guildID string) bool

	// Get returns the configuration for the guild, creating a default one on
	// first touch.
	Get(guildID string) *entities.GuildConfig

	// SetCategory sets the category that ticket channels are created under.
	SetCategory(guildID, categoryID string)

	// SetStaffRole sets the role that handles tickets.
	SetStaffRole(guildID, roleID string)

	// SetLogChannel sets the channel that ticket events are logged to.
	SetLogChannel(guildID, channelID string)

	// AddCustomButton appends a custom button label. Adding a label that
	// already exists returns ErrDuplicateLabel and leaves the set unchanged.
	AddCustomButton(guildID, label string) error

	// RemoveCustomButton removes a custom button label. Removing a label that
	// does not exist returns ErrLabelNotFound.
	RemoveCustomButton(guildID, label string) error

	// SetPanelMessage records the last sent panel message.
	SetPanelMessage(guildID string, msg *entities.PanelMessage)
}

type guildDal struct {
	// l is the logger.
	l *slog.Logger

	// store is the durable store that owns the on-disk copy. Its document
	// lock guards every read and mutation.
	store *store.Store[entities.ConfigDocument]
}

// NewGuildDal creates a new guild configuration registry.
func NewGuildDal(l *slog.Logger) GuildDal {
	dl := l.With(slog.String(logging.KeyDal, guildDalName))

	if ConfigStore == nil {
		dl.Warn("Config store is nil, this can cause a panic. Proceeding...")
	}

	return &guildDal{
		l:     dl,
		store: ConfigStore,
	}
}

// ensureLocked creates a default config if absent. The caller holds the
// store's document lock.
func (g *guildDal) ensureLocked(guildID string) (conf *entities.GuildConfig, created bool) {
	doc := g.store.Data()
	conf, ok := doc.Guilds[guildID]
	if ok {
		return conf, false
	}

	conf = entities.NewGuildConfig()
	doc.Guilds[guildID] = conf
	g.store.MarkDirty()
	return conf, true
}

func (g *guildDal) Ensure(guildID string) bool {
	defer g.observe("ensure")()
	g.store.Lock()
	defer g.store.Unlock()

	_, created := g.ensureLocked(guildID)
	return created
}

func (g *guildDal) Get(guildID string) *entities.GuildConfig {
	defer g.observe("get")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	return conf
}

func (g *guildDal) SetCategory(guildID, categoryID string) {
	defer g.observe("set_category")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	conf.TicketCategoryID = categoryID
	g.store.MarkDirty()
}

func (g *guildDal) SetStaffRole(guildID, roleID string) {
	defer g.observe("set_staff_role")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	conf.StaffRoleID = roleID
	g.store.MarkDirty()
}

func (g *guildDal) SetLogChannel(guildID, channelID string) {
	defer g.observe("set_log_channel")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	conf.LogChannelID = channelID
	g.store.MarkDirty()
}

func (g *guildDal) AddCustomButton(guildID, label string) error {
	defer g.observe("add_custom_button")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	for _, existing := range conf.CustomButtons {
		if existing == label {
			return fmt.Errorf("label %q: %w", label, ErrDuplicateLabel)
		}
	}

	conf.CustomButtons = append(conf.CustomButtons, label)
	g.store.MarkDirty()
	return nil
}

func (g *guildDal) RemoveCustomButton(guildID, label string) error {
	defer g.observe("remove_custom_button")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	for idx, existing := range conf.CustomButtons {
		if existing == label {
			conf.CustomButtons = append(conf.CustomButtons[:idx], conf.CustomButtons[idx+1:]...)
			g.store.MarkDirty()
			return nil
		}
	}
	return fmt.Errorf("label %q: %w", label, ErrLabelNotFound)
}

func (g *guildDal) SetPanelMessage(guildID string, msg *entities.PanelMessage) {
	defer g.observe("set_panel_message")()
	g.store.Lock()
	defer g.store.Unlock()

	conf, _ := g.ensureLocked(guildID)
	conf.PanelMessage = msg
	g.store.MarkDirty()
}

// observe starts the prometheus metrics for an operation and returns the
// function that records the latency.
func (g *guildDal) observe(operation string) func() {
	monitoring.StoreTotalRequests.WithLabelValues(guildDalName, operation, configStoreName).Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(guildDalName, operation, configStoreName))
	return func() {
		t.ObserveDuration()
	}
}
