package entities

// PanelMessage is a reference to the last sent open-ticket panel, so that it
// can be refreshed in place when the button set changes.
type PanelMessage struct {
	// ChannelID is the ID of the channel that the panel was sent to.
	ChannelID string `json:"channel_id"`

	// MessageID is the ID of the panel message.
	MessageID string `json:"message_id"`
}

// GuildConfig is the ticketing configuration for a guild. An empty string
// means the field has not been set up yet.
type GuildConfig struct {
	// TicketCategoryID is the ID of the category that ticket channels are created under.
	TicketCategoryID string `json:"ticket_category"`

	// StaffRoleID is the ID of the role that handles tickets.
	StaffRoleID string `json:"staff_role"`

	// LogChannelID is the ID of the channel that ticket events are logged to.
	LogChannelID string `json:"log_channel"`

	// CustomButtons is the ordered set of custom ticket button labels.
	CustomButtons []string `json:"custom_buttons"`

	// PanelMessage is the last sent panel message, if any.
	PanelMessage *PanelMessage `json:"panel_message,omitempty"`
}

// NewGuildConfig returns a guild configuration with all fields unset.
func NewGuildConfig() *GuildConfig {
	return &GuildConfig{
		CustomButtons: make([]string, 0),
	}
}

// ConfigDocument is the on-disk document holding every guild configuration.
type ConfigDocument struct {
	// Guilds maps a guild ID to its configuration.
	Guilds map[string]*GuildConfig `json:"guilds"`
}

// NewConfigDocument returns an empty configuration document.
func NewConfigDocument() *ConfigDocument {
	return &ConfigDocument{
		Guilds: make(map[string]*GuildConfig),
	}
}
