package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/entities"
)

const (
	// stdButtonPrefix marks a standard ticket-type button.
	stdButtonPrefix = "std"

	// cusButtonPrefix marks a custom ticket-type button.
	cusButtonPrefix = "cus"

	// panelMessageText is the content of the open-ticket panel.
	panelMessageText = `How can we help?
Pick the option below that best matches your request and a private ticket channel will be opened for you.`

	// maxRowButtons is the most buttons Discord allows on one actions row.
	maxRowButtons = 5
)

// ticketButton is one ticket-type button on the panel. Buttons are plain data
// dispatched through a single handler keyed by their custom ID, so the panel
// never captures per-button state.
type ticketButton struct {
	// Label is the text shown on the button.
	Label string

	// Type is the ticket type recorded on tickets the button opens.
	Type string
}

// standardButtons is the fixed set of ticket types every guild gets.
var standardButtons = []ticketButton{
	{Label: "\U0001F6D2 Purchase", Type: "Purchase"},
	{Label: "⚡ Boosting", Type: "Boosting"},
	{Label: "\U0001F6E0️ Bug Report", Type: "Bug Report"},
	{Label: "\U0001F4E9 Other", Type: "Other"},
}

// stdButtonID builds the custom ID for a standard panel button. The standard
// set is fixed, so the index is a stable token.
func stdButtonID(guildID string, idx int) string {
	return fmt.Sprintf("%s_%s_%d", stdButtonPrefix, guildID, idx)
}

// cusButtonID builds the custom ID for a custom panel button. The ID embeds
// the label itself rather than its position, so a press on an old panel
// render still resolves to the right type after other labels are removed.
func cusButtonID(guildID, label string) string {
	return fmt.Sprintf("%s_%s_%s", cusButtonPrefix, guildID, label)
}

// panelComponents renders the button rows for the guild's panel.
func panelComponents(guildID string, conf *entities.GuildConfig) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(standardButtons)+len(conf.CustomButtons))

	for idx, b := range standardButtons {
		buttons = append(buttons, discordgo.Button{
			Label:    b.Label,
			Style:    discordgo.SecondaryButton,
			CustomID: stdButtonID(guildID, idx),
		})
	}

	for _, label := range conf.CustomButtons {
		buttons = append(buttons, discordgo.Button{
			Label:    label,
			Style:    discordgo.PrimaryButton,
			CustomID: cusButtonID(guildID, label),
		})
	}

	rows := make([]discordgo.MessageComponent, 0, (len(buttons)+maxRowButtons-1)/maxRowButtons)
	for len(buttons) > 0 {
		n := maxRowButtons
		if len(buttons) < n {
			n = len(buttons)
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons[:n]})
		buttons = buttons[n:]
	}
	return rows
}

// sendPanelMessage sends a fresh panel to the channel and records it so it
// can be refreshed in place later.
func sendPanelMessage(a IApp, guildID, channelID string) (*discordgo.Message, error) {
	conf := a.GuildDal().Get(guildID)

	msg, err := a.Session().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    panelMessageText,
		Components: panelComponents(guildID, conf),
	})
	if err != nil {
		return nil, fmt.Errorf("error sending panel message: %w", err)
	}

	a.GuildDal().SetPanelMessage(guildID, &entities.PanelMessage{
		ChannelID: channelID,
		MessageID: msg.ID,
	})
	return msg, nil
}

// refreshPanel edits the recorded panel message so its buttons match the
// current configuration. It reports whether a panel existed to refresh.
func refreshPanel(a IApp, guildID string) (bool, error) {
	conf := a.GuildDal().Get(guildID)
	if conf.PanelMessage == nil {
		return false, nil
	}

	content := panelMessageText
	if _, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    conf.PanelMessage.ChannelID,
		ID:         conf.PanelMessage.MessageID,
		Content:    &content,
		Components: panelComponents(guildID, conf),
	}); err != nil {
		return true, fmt.Errorf("error editing panel message: %w", err)
	}
	return true, nil
}

// buttonTicketType resolves a pressed button's ticket type from its custom
// ID. A press on a stale panel render for a label that has since been removed
// is not an error the user can act on; it returns ok=false.
func buttonTicketType(a IApp, customID string) (ticketType string, ok bool) {
	parts := strings.SplitN(customID, "_", 3)
	if len(parts) != 3 {
		return "", false
	}

	switch parts[0] {
	case stdButtonPrefix:
		idx, err := strconv.Atoi(parts[2])
		if err != nil || idx < 0 || idx >= len(standardButtons) {
			return "", false
		}
		return standardButtons[idx].Type, true
	case cusButtonPrefix:
		// The label is the token; it must still be configured.
		conf := a.GuildDal().Get(parts[1])
		for _, label := range conf.CustomButtons {
			if label == parts[2] {
				return label, true
			}
		}
		return "", false
	}
	return "", false
}
