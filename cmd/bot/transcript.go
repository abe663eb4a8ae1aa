package main

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/Jacobbrewer1/porter/pkg/logging"
)

// historyPageSize is the Discord maximum for one history request.
const historyPageSize = 100

// generateTranscript renders the channel's full history, oldest first, as a
// small HTML document.
func generateTranscript(a IApp, channelID string) (*bytes.Buffer, error) {
	channel, err := a.Session().Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting channel: %w", err)
	}

	var messages []*discordgo.Message
	beforeID := ""
	for {
		page, err := a.Session().ChannelMessages(channelID, historyPageSize, beforeID, "", "")
		if err != nil {
			return nil, fmt.Errorf("error getting channel history: %w", err)
		}
		if len(page) == 0 {
			break
		}

		// Pages come newest first.
		messages = append(messages, page...)
		beforeID = page[len(page)-1].ID
		if len(page) < historyPageSize {
			break
		}
	}

	buf := new(bytes.Buffer)
	buf.WriteString("<html><meta charset='utf-8'><body>")
	buf.WriteString(fmt.Sprintf("<h2>Transcript: %s</h2><hr>", html.EscapeString(channel.Name)))
	for idx := len(messages) - 1; idx >= 0; idx-- {
		m := messages[idx]
		ts, err := discordgo.SnowflakeTimestamp(m.ID)
		if err != nil {
			ts = time.Time{}
		}
		buf.WriteString(fmt.Sprintf("<p><b>[%s] %s:</b> %s</p>",
			ts.UTC().Format("2006-01-02 15:04:05"),
			html.EscapeString(m.Author.Username),
			html.EscapeString(m.Content),
		))
	}
	buf.WriteString("</body></html>")
	return buf, nil
}

// sendTranscript DMs the transcript to the ticket owner. Failures (e.g. the
// owner has DMs disabled) are logged and ignored.
func sendTranscript(a IApp, ticket *entities.Ticket, transcript *bytes.Buffer) {
	dm, err := a.Session().UserChannelCreate(ticket.UserID)
	if err != nil {
		a.Log().Error("Error opening DM channel for transcript", slog.String(logging.KeyError, err.Error()))
		return
	}

	if _, err := a.Session().ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("\U0001F4DC Your ticket #%d has been closed. The transcript is attached.", ticket.ID),
		Files: []*discordgo.File{
			{
				Name:        fmt.Sprintf("%s-transcript.html", ticket.Name()),
				ContentType: "text/html",
				Reader:      transcript,
			},
		},
	}); err != nil {
		a.Log().Error("Error sending transcript", slog.String(logging.KeyError, err.Error()))
	}
}
