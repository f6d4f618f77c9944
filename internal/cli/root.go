// Package cli implements the relstampctl commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"relstamp/internal/core/stamp"
	"relstamp/internal/core/tracker"
	"relstamp/internal/document"
	"relstamp/internal/logs"
	"relstamp/internal/platform"
	"relstamp/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// AppName names the configuration directory shared with the desktop app.
const AppName = "RelStamp"

// Version is set at build time.
var Version = "0.1.0"

type app struct {
	stdout io.Writer
	stderr io.Writer

	// Global flags
	configDir string
	logLevel  string
	now       string
	noColor   bool

	logger  *slog.Logger
	store   *storage.Store
	session *Session
	editor  *sessionEditor
	tracker *tracker.Tracker
}

// Execute runs relstampctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.tracker != nil {
		a.tracker.Close()
	}
	if err == nil {
		return ExitSuccess
	}

	cliErr := FromError(err)
	if a.logger != nil {
		a.logger.Debug("command failed", "code", cliErr.Code, "error", err)
	}
	printError(stderr, cliErr)
	return cliErr.ExitCode
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "relstampctl",
		Short: "Insert relative timestamps into markdown documents",
		Long: `relstampctl tracks a reference moment and inserts how long ago it was
("3 hours ago") into markdown documents.

The reference is reset by hand, parsed from a clock time, or stored per
document in the front matter field "lasttime". Settings are shared with the
RelStamp desktop app.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configDir, "config-dir", "", "directory holding settings.yaml (default: user config dir, or $"+platform.EnvConfigDir+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default: $"+logs.EnvLevel+" or warn)")
	flags.StringVar(&a.now, "now", "", "pretend the current time is this YYYYMMDDHHmmss timestamp")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.resetCmd(),
		a.insertCmd(),
		a.saveCmd(),
		a.openCmd(),
		a.syncCmd(),
		a.closeCmd(),
		a.statusCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) init() error {
	if a.noColor {
		color.NoColor = true
	}

	logger, _, err := logs.New(logs.Options{Level: a.logLevel, Terminal: a.stderr})
	if err != nil {
		return usageError("%v", err)
	}
	a.logger = logger

	dir := a.configDir
	if dir == "" {
		dir, err = platform.ConfigDir(AppName)
		if err != nil {
			return err
		}
	}

	clock := stamp.Clock(stamp.SystemClock{})
	if a.now != "" {
		fixed, err := stamp.Parse(a.now, time.Local)
		if err != nil {
			return usageError("--now: %v", err)
		}
		clock = stamp.FixedClock(fixed)
	}

	a.store = storage.NewStore(dir)
	state, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	a.session, err = loadSession(dir)
	if err != nil {
		return err
	}
	a.editor = &sessionEditor{session: a.session}

	a.tracker = tracker.New(state, tracker.Ports{
		Editor:   a.editor,
		Metadata: document.NewMetadataStore(),
		Settings: a.store,
		Notifier: tracker.NotifierFunc(a.notify),
		Clock:    clock,
	}, tracker.Options{Logger: logger})

	logger.Debug("settings loaded", "dir", dir, "reference", state.Reference, "active_document", a.session.ActiveDocument)
	return nil
}

func (a *app) notify(message string) {
	_, _ = color.New(color.FgGreen).Fprintln(a.stdout, message)
}
