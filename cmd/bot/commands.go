package main

import (
	"github.com/Jacobbrewer1/discordgo"
)

const (
	// SetupCmdName is the command for configuring the ticket system.
	SetupCmdName = "setup"

	// PanelCmdName is the command for sending the open-ticket panel.
	PanelCmdName = "panel"

	// CloseCmdName is the command for closing the current ticket.
	CloseCmdName = "close"

	// RenameCmdName is the command for renaming the current ticket.
	RenameCmdName = "rename"

	// AddCmdName is the command for adding a member to the current ticket.
	AddCmdName = "add"

	// BlacklistCmdName is the command for blacklisting a user or role.
	BlacklistCmdName = "blacklist"

	// UnblacklistCmdName is the command for removing a user or role from the blacklist.
	UnblacklistCmdName = "unblacklist"

	// ButtonCmdName is the command for managing custom ticket buttons.
	ButtonCmdName = "button"

	// ResyncCmdName is the command for re-registering the slash commands.
	ResyncCmdName = "resync"
)

const (
	// categoryOptName is the option for the ticket category.
	categoryOptName = "category"

	// staffRoleOptName is the option for the staff role.
	staffRoleOptName = "staff_role"

	// logChannelOptName is the option for the log channel.
	logChannelOptName = "log_channel"

	// nameOptName is the option for a new name.
	nameOptName = "name"

	// memberOptName is the option for a member.
	memberOptName = "member"

	// roleOptName is the option for a role.
	roleOptName = "role"

	// reasonOptName is the option for a blacklist reason.
	reasonOptName = "reason"

	// labelOptName is the option for a button label.
	labelOptName = "label"

	// addSubCmdName is the sub command for adding a button.
	addSubCmdName = "add"

	// removeSubCmdName is the sub command for removing a button.
	removeSubCmdName = "remove"
)

// slashCommands is every command the bot registers per guild.
var slashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        SetupCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Configure the ticket system for this server.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:         categoryOptName,
				Type:         discordgo.ApplicationCommandOptionChannel,
				Description:  "The category that ticket channels are created under.",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
				Required:     true,
			},
			{
				Name:        staffRoleOptName,
				Type:        discordgo.ApplicationCommandOptionRole,
				Description: "The role that handles tickets.",
				Required:    true,
			},
			{
				Name:         logChannelOptName,
				Type:         discordgo.ApplicationCommandOptionChannel,
				Description:  "The channel that ticket events are logged to.",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				Required:     true,
			},
		},
	},
	{
		Name:        PanelCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Send the open-ticket panel to this channel.",
	},
	{
		Name:        CloseCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Close the ticket in this channel.",
	},
	{
		Name:        RenameCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Rename the ticket in this channel.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        nameOptName,
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "The new name for the ticket.",
				Required:    true,
			},
		},
	},
	{
		Name:        AddCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Add a member to the ticket in this channel.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        memberOptName,
				Type:        discordgo.ApplicationCommandOptionUser,
				Description: "The member to add to the ticket.",
				Required:    true,
			},
		},
	},
	{
		Name:        BlacklistCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Blacklist a user or role from opening tickets.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        memberOptName,
				Type:        discordgo.ApplicationCommandOptionUser,
				Description: "The user to blacklist.",
			},
			{
				Name:        roleOptName,
				Type:        discordgo.ApplicationCommandOptionRole,
				Description: "The role to blacklist.",
			},
			{
				Name:        reasonOptName,
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "Why the subject is being blacklisted.",
			},
		},
	},
	{
		Name:        UnblacklistCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Remove a user or role from the blacklist.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        memberOptName,
				Type:        discordgo.ApplicationCommandOptionUser,
				Description: "The user to remove from the blacklist.",
			},
			{
				Name:        roleOptName,
				Type:        discordgo.ApplicationCommandOptionRole,
				Description: "The role to remove from the blacklist.",
			},
		},
	},
	{
		Name:        ButtonCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Manage the custom ticket buttons on the panel.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        addSubCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Add a custom ticket button.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        labelOptName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "The label for the new button.",
						Required:    true,
					},
				},
			},
			{
				Name:        removeSubCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Remove a custom ticket button.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        labelOptName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "The label of the button to remove.",
						Required:    true,
					},
				},
			},
		},
	},
	{
		Name:        ResyncCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Re-register the slash commands for this server.",
	},
}
