// Package commands implements the animwrap command line.
package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/animwrap/cmd/animwrap/internal/project"
	"github.com/go-drift/animwrap/pkg/errors"
	"github.com/go-drift/animwrap/pkg/telemetry"
)

// globals holds state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE.
type globals struct {
	projectDir string
	logLevel   string
	logFormat  string

	logger  zerolog.Logger
	closer  io.Closer
	project *project.Resolved
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	g := &globals{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "animwrap",
		Short: "Declarative animation wrappers",
		Long: `animwrap works with documents of named animation configs.

Each config wraps a single child in one of the built-in behaviors
(SCALE, FADE_IN, FADE_OUT, SLIDE_IN, SLIDE_OUT, BOUNCE, RIPPLE, WIGGLE,
DRAGGABLE). Project defaults are read from animwrap.yaml at the module root.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if g.closer != nil {
				return g.closer.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.projectDir, "project", "C", ".", "directory inside the project")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(newValidateCommand(g))
	rootCmd.AddCommand(newPreviewCommand(g))
	rootCmd.AddCommand(newInfoCommand(g))
	rootCmd.AddCommand(newDemoCommand(g))

	return rootCmd
}

// setup resolves the project, if there is one, and builds the logger.
// Flags override animwrap.yaml.
func (g *globals) setup(cmd *cobra.Command) error {
	var logging telemetry.LoggingConfig
	if root, err := project.FindProjectRoot(g.projectDir); err == nil {
		resolved, err := project.Resolve(root)
		if err != nil {
			return err
		}
		g.project = resolved
		logging = resolved.Logging
	}

	if g.logLevel != "" {
		logging.Level = g.logLevel
	}
	if g.logFormat != "" {
		logging.Format = g.logFormat
	}
	if logging.Format == "" {
		logging.Format = "console"
	}
	if logging.Output == "" {
		logging.Writer = cmd.ErrOrStderr()
	}

	logger, closer, err := telemetry.NewLogger(logging)
	if err != nil {
		return err
	}
	g.logger, g.closer = logger, closer
	errors.SetHandler(&errors.LogHandler{Logger: &g.logger})

	if g.project != nil {
		g.logger.Debug().Str("root", g.project.Root).Str("module", g.project.ModulePath).Msg("project resolved")
	}
	return nil
}

// documentPath picks the animation document: an explicit argument, then
// the project setting, then ./animations.yaml.
func (g *globals) documentPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if g.project != nil {
		return g.project.Document
	}
	return project.DefaultDocument
}

func (g *globals) component(name string) zerolog.Logger {
	return telemetry.Component(g.logger, name)
}
