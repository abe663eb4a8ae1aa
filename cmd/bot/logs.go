package main

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"golang.org/x/time/rate"
)

// logsChannelName is the channel created for ticket logs when none is
// configured.
const logsChannelName = "ticket-logs"

// logLimiter caps audit sends so a burst of lifecycle events cannot starve
// the session's other API calls.
var logLimiter = rate.NewLimiter(rate.Limit(1), 5)

// logTicketEvent sends an audit line for the guild. It is best-effort: any
// failure is logged and swallowed so the originating operation never fails
// because of its audit trail.
func logTicketEvent(a IApp, guildID, message string) {
	if !logLimiter.Allow() {
		a.Log().Warn("Dropping ticket audit event, rate limited", slog.String("guild", guildID))
		return
	}

	channelID, err := ensureLogsChannel(a, guildID)
	if err != nil {
		a.Log().Error("Error resolving logs channel", slog.String(logging.KeyError, err.Error()))
		return
	}

	if _, err := a.Session().ChannelMessageSend(channelID, message); err != nil {
		a.Log().Error("Error sending ticket audit event", slog.String(logging.KeyError, err.Error()))
	}
}

// ensureLogsChannel resolves the guild's audit channel: the configured one,
// else an existing channel by name, else a fresh restricted channel which is
// then recorded in the configuration.
func ensureLogsChannel(a IApp, guildID string) (string, error) {
	conf := a.GuildDal().Get(guildID)
	if conf.LogChannelID != "" {
		if _, err := a.Session().Channel(conf.LogChannelID); err == nil {
			return conf.LogChannelID, nil
		}
		// The configured channel is gone; fall through and recreate.
	}

	channels, err := a.Session().GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("error listing channels: %w", err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == logsChannelName {
			return ch.ID, nil
		}
	}

	created, err := a.Session().GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: logsChannelName,
		Type: discordgo.ChannelTypeGuildText,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			// Deny @everyone from seeing the log.
			{
				ID:   guildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionAll,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error creating logs channel: %w", err)
	}

	a.GuildDal().SetLogChannel(guildID, created.ID)
	return created.ID, nil
}
