package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/echoverse/echoverse/internal/apperr"
	"github.com/echoverse/echoverse/internal/device"
	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/osutil"
	"github.com/echoverse/echoverse/internal/pathutil"
	"github.com/echoverse/echoverse/internal/sched"
	"github.com/echoverse/echoverse/journal"
	"github.com/echoverse/echoverse/playback"
	"github.com/echoverse/echoverse/recorder"
	"github.com/echoverse/echoverse/stats"
	"github.com/echoverse/echoverse/studio"
)

const (
	envNoColor          = "NO_COLOR"
	envEchoVerseNoColor = "ECHOVERSE_NO_COLOR"
)

var (
	errMissingID = &apperr.Error{
		Message: "an entry id is required",
	}

	errMissingReflection = &apperr.Error{
		Message: "reflection text is required",
	}
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// reconcile runs one unlock pass. A pass that is already running or that
// fails to save is not fatal for the caller; the next pass retries it.
func (e *env) reconcile(ctx context.Context) ([]models.AudioEntry, error) {
	unlocked, err := e.journal.CheckUnlocked(ctx)

	switch {
	case err == nil:
		return unlocked, nil
	case errors.Is(err, journal.ErrReconcileInFlight):
		e.logger.Debug("skipping unlock check", slog.Any("error", err))
		return nil, nil
	case errors.Is(err, journal.ErrPersistence):
		pterm.Warning.Println(err)
		return nil, nil
	}

	return nil, err
}

// recordAction opens the recording screen.
func recordAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	if e.cfg.User.ID == "" {
		return journal.ErrNotAuthenticated
	}

	return e.record(ctx.Context, e.newDevice(), runProgram)
}

// runProgram runs a TUI model until it quits.
func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

// record runs the recording screen on dev. The session is disposed on every
// exit path so the device and an unsaved artifact never outlive the command.
func (e *env) record(
	ctx context.Context,
	dev device.Device,
	run func(tea.Model) error,
) error {
	sess := recorder.New(
		dev,
		&recorder.WAVAssembler{Dir: e.cfg.System.RecordingsDir},
		sched.Ticker{},
		e.recorderOptions(),
		e.logger,
	)

	defer sess.Dispose()

	m := studio.New(ctx, sess, e.journal, studio.Options{
		DefaultUnlock: e.cfg.Entries.DefaultUnlock,
		Ambience:      e.cfg.Playback.Ambience,
	}, e.logger)

	err := run(m)
	if err != nil {
		return err
	}

	if entry, ok := m.Saved(); ok {
		e.logger.Info("recording saved", slog.String("id", entry.ID))
	}

	return nil
}

// listAction prints every entry of the user, unlocking those that are due.
func listAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	_, err = e.reconcile(ctx.Context)
	if err != nil {
		return err
	}

	entries, err := e.journal.Entries(ctx.Context)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		if entries == nil {
			entries = []models.AudioEntry{}
		}

		err = sortEntries(entries, ctx.String("sort"))
		if err != nil {
			return err
		}

		return printJSON(e.out, entries)
	}

	return listEntries(e.out, entries, ctx.String("sort"), time.Now())
}

// showAction prints the details of one entry.
func showAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	_, err = e.reconcile(ctx.Context)
	if err != nil {
		return err
	}

	entry, err := e.journal.Get(ctx.Context, id)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(e.out, entry)
	}

	printEntry(e.out, &entry, time.Now())

	return nil
}

// playAction plays an unlocked entry with its background ambience.
func playAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	entry, err := e.journal.Open(ctx.Context, id)
	if err != nil {
		return err
	}

	track, err := playback.Load(entry, e.cfg.Playback.Ambience, e.logger)
	if err != nil {
		return err
	}

	defer track.Close()

	err = track.Play(playback.Speaker{})
	if err != nil {
		return err
	}

	m := playback.NewModel(track, e.cfg.Visualizer.Bars, e.cfg.Visualizer.Scale)

	return runProgram(m)
}

// reflectAction saves a reflection on an unlocked entry.
func reflectAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	text := ctx.Args().Get(1)
	if text == "" {
		return errMissingReflection
	}

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	_, err = e.reconcile(ctx.Context)
	if err != nil {
		return err
	}

	entry, err := e.journal.SaveReflection(ctx.Context, id, text)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Reflection saved for %q", entry.Title)

	return nil
}

// statsAction summarises the user's entries.
func statsAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	_, err = e.reconcile(ctx.Context)
	if err != nil {
		return err
	}

	entries, err := e.journal.Entries(ctx.Context)
	if err != nil {
		return err
	}

	s := stats.Compute(entries)

	if ctx.Bool("json") {
		return printJSON(e.out, s)
	}

	stats.Show(e.out, s, time.Now())

	return nil
}

// unlockAction runs a single unlock pass.
func unlockAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	unlocked, err := e.reconcile(ctx.Context)
	if err != nil {
		return err
	}

	if len(unlocked) == 0 {
		pterm.Info.Println("No messages are ready to unlock yet")
		return nil
	}

	return printEntriesTable(e.out, unlocked, time.Now())
}

// watchAction unlocks entries periodically until interrupted.
func watchAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	c, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := e.cfg.Unlock.WatchInterval

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pterm.Info.Printfln(
		"Checking for messages to unlock every %s. Press Ctrl+C to stop",
		interval,
	)

	for {
		_, err = e.reconcile(c)
		if err != nil {
			return err
		}

		select {
		case <-c.Done():
			e.logger.Info("watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	args, err := shellquote.Split(editor)
	if err != nil {
		return err
	}

	err = pathutil.Initialize()
	if err != nil {
		return err
	}

	args = append(args, pathutil.Must().ConfigFilePath())

	//nolint:gosec // the editor comes from the user's own environment
	cmd := exec.Command(args[0], args[1:]...)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envEchoVerseNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting echoverse")

	return nil
}
