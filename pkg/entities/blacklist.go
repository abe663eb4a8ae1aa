package entities

// BlacklistEntry is a single blacklisted user or role.
type BlacklistEntry struct {
	// ID is the ID of the blacklisted user or role.
	ID string `json:"id"`

	// Reason is why the subject was blacklisted, if one was given.
	Reason string `json:"reason,omitempty"`
}

// GuildBlacklist is the deny-list for one guild.
type GuildBlacklist struct {
	// Users are the blacklisted user entries.
	Users []BlacklistEntry `json:"users"`

	// Roles are the blacklisted role entries.
	Roles []BlacklistEntry `json:"roles"`
}

// NewGuildBlacklist returns an empty blacklist for a guild.
func NewGuildBlacklist() *GuildBlacklist {
	return &GuildBlacklist{
		Users: make([]BlacklistEntry, 0),
		Roles: make([]BlacklistEntry, 0),
	}
}

// BlacklistDocument is the on-disk document holding every guild's blacklist.
type BlacklistDocument struct {
	// Guilds maps a guild ID to its blacklist.
	Guilds map[string]*GuildBlacklist `json:"guilds"`
}

// NewBlacklistDocument returns an empty blacklist document.
func NewBlacklistDocument() *BlacklistDocument {
	return &BlacklistDocument{
		Guilds: make(map[string]*GuildBlacklist),
	}
}
