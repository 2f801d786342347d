package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a message unlocks",
	}

	maxDurationFlag = &cli.StringFlag{
		Name:    "max-duration",
		Aliases: []string{"m"},
		Usage:   "Longest a recording may run, e.g. 90s or 2m. A bare number is read as seconds (default: 60)",
	}

	deviceFlag = &cli.StringFlag{
		Name:  "device",
		Usage: "Capture device to record from: exec or synth (default: exec)",
	}

	deviceCmdFlag = &cli.StringFlag{
		Name:    "device-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Command that writes raw 16-bit little-endian PCM to stdout",
	}

	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Storage backend for entries: bolt or sqlite (default: bolt)",
	}

	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "User whose entries are read and written",
	}

	ambienceFlag = &cli.StringFlag{
		Name:    "ambience",
		Aliases: []string{"a"},
		Usage:   "Background ambience for playback: silence, rain or piano",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error (default: info)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	sortFlag = &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "Sort entries by created or title",
		Value:   sortCreated,
	}
)

var globalFlags = []cli.Flag{
	maxDurationFlag,
	deviceFlag,
	deviceCmdFlag,
	backendFlag,
	userFlag,
	ambienceFlag,
	logLevelFlag,
	disableNotificationFlag,
	noColorFlag,
}
