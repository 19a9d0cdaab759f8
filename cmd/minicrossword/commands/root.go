package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"minicrossword/lib/chrono"
	"minicrossword/lib/configutil"
	"minicrossword/lib/scrapers/mini"
	"minicrossword/lib/telemetry"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
)

const serviceName = "minicrossword"

const shutdownTimeout = time.Second * 10

// the go toolchain this tool was last verified against.
const testedGoVersion = "go1.22.2"

type ArchiveConfig struct {
	// sqlite file, archiving is disabled when empty
	File string `json:"file"`
}

type Config struct {
	Url           string        `json:"url"`
	LogFile       string        `json:"log_file"`
	Output        string        `json:"output"`
	Archive       ArchiveConfig `json:"archive"`
	HttpDumpDir   string        `json:"http_dump_dir"`
	WatchSchedule string        `json:"watch_schedule"`
}

func defaultConfig() Config {
	return Config{
		Url:           mini.DefaultUrl,
		LogFile:       "minicrossword.log",
		WatchSchedule: "0 23 * * *",
	}
}

// app is the state shared by every command for a single invocation.
type app struct {
	configPath string
	verbose    bool
	logStderr  bool

	cfg       Config
	stdout    io.Writer
	logCloser io.Closer
	tel       *telemetry.Telemetry

	newCron func() chrono.CronAPI
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := configutil.ReadConfig(a.configPath, defaultConfig())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read config: %w", err)
	}
	a.cfg = cfg

	logFile := a.cfg.LogFile
	if a.logStderr {
		logFile = ""
	}
	a.logCloser, err = telemetry.InitSlog(telemetry.SlogOptions{
		Verbose: a.verbose,
		File:    logFile,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	if runtime.Version() != testedGoVersion {
		slog.Warn("this binary has only been tested with "+testedGoVersion, "built_with", runtime.Version())
	}

	tel, err := telemetry.SetupFromEnv(cmd.Context(), serviceName)
	if err != nil {
		slog.Debug("telemetry disabled", "err", err)
		return nil
	}
	a.tel = &tel
	return nil
}

// teardown flushes telemetry and closes the log file, it is safe to call
// when setup never ran.
func (a *app) teardown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if a.tel != nil {
		errs = append(errs, a.tel.Shutdown(ctx))
		a.tel = nil
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

func newRootCmd(stdout io.Writer) (*cobra.Command, *app) {
	a := &app{
		stdout: stdout,
		newCron: func() chrono.CronAPI {
			return chrono.NewStandardCron()
		},
	}

	rootCmd := &cobra.Command{
		Use:           "minicrossword",
		Short:         "minicrossword extracts the clues of the daily mini crossword.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "minicrossword.json5", "The config file to read.")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enables debug logging (and http dumps when configured).")
	rootCmd.PersistentFlags().BoolVar(&a.logStderr, "log-stderr", false, "Logs to stderr instead of the configured log file.")

	rootCmd.AddCommand(
		newScrapeCmd(a),
		newParseCmd(a),
		newShowCmd(a),
		newHistoryCmd(a),
		newWatchCmd(a),
	)
	return rootCmd, a
}

// execute runs cmd and tears the app down afterwards, whether or not the command failed.
func execute(ctx context.Context, cmd *cobra.Command, a *app) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "minicrossword failed", "err", err)
	}
	teardownErr := a.teardown()
	if teardownErr != nil {
		slog.WarnContext(ctx, "teardown failed", "err", teardownErr)
	}
	if err != nil {
		return err
	}
	return teardownErr
}

// Run executes the command line in args, writing command output to stdout.
func Run(ctx context.Context, stdout io.Writer, args []string) error {
	cmd, a := newRootCmd(stdout)
	cmd.SetArgs(args)
	return execute(ctx, cmd, a)
}

func ExecuteContext(ctx context.Context) {
	err := Run(ctx, os.Stdout, os.Args[1:])
	if err != nil {
		// the logger may not be set up if the config could not be read
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
