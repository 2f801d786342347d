package app

import (
	"github.com/urfave/cli/v2"

	"github.com/echoverse/echoverse/internal/config"
)

// Get retrieves the echoverse app instance.
func Get() *cli.App {
	echoApp := &cli.App{
		Name: "echoverse",
		Usage: `
		EchoVerse is a voice time capsule for the command-line. Record a message
		for your future self, lock it until a date of your choosing, and listen
		back once it unlocks.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "record",
				Aliases: []string{"r"},
				Usage:   "Record a new message for your future self",
				Action:  recordAction,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your messages grouped by the month they were recorded",
				Flags: []cli.Flag{
					jsonFlag,
					sortFlag,
				},
				Action: listAction,
			},
			{
				Name:      "show",
				Usage:     "Print the details of a message",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					jsonFlag,
				},
				Action: showAction,
			},
			{
				Name:      "play",
				Usage:     "Play an unlocked message",
				ArgsUsage: "ID",
				Action:    playAction,
			},
			{
				Name:      "reflect",
				Usage:     "Save a reflection on an unlocked message",
				ArgsUsage: "ID TEXT",
				Action:    reflectAction,
			},
			{
				Name:  "stats",
				Usage: "Summarise your messages by mood and month",
				Flags: []cli.Flag{
					jsonFlag,
				},
				Action: statsAction,
			},
			{
				Name:   "unlock",
				Usage:  "Unlock every message whose time has come",
				Action: unlockAction,
			},
			{
				Name:   "watch",
				Usage:  "Keep checking for messages to unlock until interrupted",
				Action: watchAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  globalFlags,
		Before: beforeAction,
		After:  afterAction,
	}

	return echoApp
}
