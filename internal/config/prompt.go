package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/echoverse/echoverse/internal/models"
)

const asciiLogo = `
 ___     _        __   __
| __|__ | |_  ___ \ \ / /___ _ _ ___ ___
| _|/ _|| ' \/ _ \ \ V // -_) '_(_-</ -_)
|___\__||_||_\___/  \_/ \___|_| /__/\___|`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	UserID        string
	Ambience      models.Ambience
	DefaultUnlock string
	Notify        bool
}

// WithPromptConfig returns an Option that asks for the first run settings
// when no config file exists yet. It must run before WithViperConfig so the
// answers are written to the new file.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		Ambience:      models.Silence,
		DefaultUnlock: "in 30 days",
		Notify:        true,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to set up EchoVerse for the first time.
Press ENTER to accept the defaults.
Edit the config file with 'echoverse edit-config' to change any settings.`, " ").
		Render()

	ambiences := make([]huh.Option[models.Ambience], 0, len(models.Ambiences))
	for _, a := range models.Ambiences {
		ambiences = append(ambiences, huh.NewOption(string(a), a))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should your future self call you?").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a name is required")
					}

					return nil
				}).
				Value(&opts.UserID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How long should new messages stay locked?").
				Options(
					huh.NewOption("1 week", "in 7 days"),
					huh.NewOption("30 days", "in 30 days").Selected(true),
					huh.NewOption("6 months", "in 6 months"),
					huh.NewOption("1 year", "in 1 year"),
				).
				Value(&opts.DefaultUnlock),
		),
		huh.NewGroup(
			huh.NewSelect[models.Ambience]().
				Title("Background ambience for playback").
				Options(ambiences...).
				Value(&opts.Ambience),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Notify me when a message unlocks?").
				Value(&opts.Notify),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions exports the answers as environment overrides so that
// WithViperConfig picks them up and writes them to the new config file.
func applyPromptOptions(opts PromptOptions) error {
	vars := map[string]string{
		keyUserID:               strings.TrimSpace(opts.UserID),
		keyDefaultUnlock:        opts.DefaultUnlock,
		keyPlaybackAmbience:     string(opts.Ambience),
		keyNotificationsEnabled: fmt.Sprint(opts.Notify),
	}

	for key, val := range vars {
		if err := os.Setenv(envKey(key), val); err != nil {
			return err
		}
	}

	return nil
}

func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
