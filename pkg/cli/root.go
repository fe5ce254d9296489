// Package cli is the estorage command line.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/filetug/estorage/pkg/logging"
	"github.com/filetug/estorage/pkg/settings"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type settingsKey struct{}

var defaultConfigPath = settings.DefaultPath

var newLogger = logging.NewWithFile

// NewRootCmd builds the estorage command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logCloser  io.Closer
	)

	root := &cobra.Command{
		Use:           "estorage",
		Short:         "Browse and manage files on local disks, FTP servers and HTTP indexes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				s.LogLevel = logLevel
			}
			logger, closer, err := newLogger(s.LogLevel, cmd.ErrOrStderr(), s.LogFile)
			if err != nil {
				return err
			}
			logCloser = closer

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithContext(ctx)
			ctx = context.WithValue(ctx, settingsKey{}, s)
			cmd.SetContext(ctx)
			logger.Debug().Str("command", cmd.CommandPath()).Strs("args", args).Msg("starting")
			return nil
		},
	}
	// Cobra skips the post run hooks when RunE fails, so the log is closed
	// from both places and only once.
	closeLog := func() error {
		if logCloser == nil {
			return nil
		}
		closer := logCloser
		logCloser = nil
		return closer.Close()
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return closeLog()
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.filetug/estorage.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug / info / warn / error")

	root.AddCommand(
		newStatCmd(),
		newLsCmd(),
		newCatCmd(),
		newImageCmd(),
		newRmCmd(),
		newMvCmd(),
		newMkdirCmd(),
		newTouchCmd(),
		newInspectCmd(),
		newConfigCmd(&configPath),
	)
	closeLogOnError(root, closeLog)
	return root
}

func closeLogOnError(cmd *cobra.Command, closeLog func() error) {
	for _, sub := range cmd.Commands() {
		closeLogOnError(sub, closeLog)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			if closeErr := closeLog(); closeErr != nil {
				return errors.Join(err, closeErr)
			}
		}
		return err
	}
}

func loadSettings(configPath string) (settings.Settings, error) {
	if configPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return settings.Defaults(), nil
		}
		configPath = p
	}
	return settings.Load(configPath)
}

func settingsFrom(ctx context.Context) settings.Settings {
	if s, ok := ctx.Value(settingsKey{}).(settings.Settings); ok {
		return s
	}
	return settings.Defaults()
}

func loggerFrom(cmd *cobra.Command) *zerolog.Logger {
	return zerolog.Ctx(cmd.Context())
}
