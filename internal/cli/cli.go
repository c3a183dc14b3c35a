// Package cli implements the morph command-line interface.
//
// Every command reads a TOML job file (see internal/job) naming the input
// images and their feature lines, runs one morphing operation and writes
// PNG (and, for sequences, GIF) files to an output directory.
//
// # Commands
//
//   - warp: warp two images to their interpolated geometry
//   - blend: warp two images and cross-dissolve them
//   - merge: warp N images to a weighted shared geometry and blend them
//   - sequence: render the frames of a morph through all images
//   - grid: draw each image's warped grid and feature lines
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The same
// charmbracelet/log logger is installed as the slog handler of the morph
// package, so its debug records (band counts, resize decisions, timings)
// appear alongside the command's own.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gogpu/morph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	jobPath string
	outDir  string
	workers int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		outDir: ".",
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "morph",
		Short:        "Feature-based image morphing",
		Long:         `morph warps, blends and merges images with the Beier-Neely multi-line field warp, driven by feature lines listed in a TOML job file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			morph.SetLogger(slog.New(c.Logger))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.jobPath, "job", "j", "", "job file (TOML)")
	root.PersistentFlags().StringVarP(&c.outDir, "out", "o", c.outDir, "output directory")
	root.PersistentFlags().IntVar(&c.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	_ = root.MarkPersistentFlagRequired("job")

	root.AddCommand(c.warpCommand())
	root.AddCommand(c.blendCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.sequenceCommand())
	root.AddCommand(c.gridCommand())

	return root
}

// runLogger returns the CLI logger tagged with a fresh run id and the
// command name.
func (c *CLI) runLogger(cmd string) *log.Logger {
	return c.Logger.With("run", uuid.NewString()[:8], "cmd", cmd)
}

// morphOptions returns the execution options for the --workers flag and a
// release func that must be called when the command is done.
func (c *CLI) morphOptions() ([]morph.Option, func()) {
	if c.workers <= 0 {
		return nil, func() {}
	}
	pool := morph.NewPool(c.workers)
	return []morph.Option{morph.WithPool(pool), morph.WithWorkers(c.workers)}, pool.Close
}
