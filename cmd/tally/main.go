// Package main provides the CLI entrypoint for tally.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tally/internal/config"
	"github.com/verte-zerg/tally/internal/counter"
	"github.com/verte-zerg/tally/internal/logger"
	"github.com/verte-zerg/tally/internal/model"
	"github.com/verte-zerg/tally/internal/store"
)

const (
	defaultUnit      = "chars"
	defaultEncoding  = "utf-8"
	defaultGlob      = true
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

var (
	countFiles    []string
	countUnit     string
	countEncoding string
	countGlob     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tally",
		Short:         "Count lines, words, and characters; compute with matrices",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runCountCmd,
	}

	rootCmd.Flags().StringArrayVarP(&countFiles, "file-path", "f", nil, "file to count (repeatable; reads stdin when omitted)")
	rootCmd.Flags().StringVar(&countUnit, "unit", defaultUnit, "third column unit: chars or bytes")
	rootCmd.Flags().StringVar(&countEncoding, "encoding", defaultEncoding, "source text encoding")
	rootCmd.Flags().BoolVar(&countGlob, "glob", defaultGlob, "expand glob patterns in file paths")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newMatrixCmd())

	return rootCmd
}

func runCountCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "unit", &countUnit, fileCfg.Counter.Unit)
	applyStringConfig(cmd, "encoding", &countEncoding, fileCfg.Counter.Encoding)
	applyBoolConfig(cmd, "glob", &countGlob, fileCfg.Counter.Glob)

	unit, err := counter.ParseUnit(countUnit)
	if err != nil {
		return fmt.Errorf("invalid --unit value: %w", err)
	}
	c, err := counter.New(counter.Options{Unit: unit, Encoding: countEncoding, Glob: countGlob})
	if err != nil {
		return fmt.Errorf("invalid --encoding value: %w", err)
	}
	slog.Debug("resolved counter options",
		"unit", unit.String(),
		"encoding", countEncoding,
		"glob", countGlob,
		"paths", len(countFiles),
	)

	startedAt := time.Now()
	result, err := c.Run(cmd.OutOrStdout(), cmd.InOrStdin(), countFiles)
	if err != nil {
		return err
	}

	if config.BoolOr(fileCfg.History.Enabled, false) {
		run := model.Run{
			StartedAt: startedAt,
			Mode:      string(result.Mode),
			Unit:      unit.String(),
			Sources:   result.Sources,
			Total:     result.Total,
		}
		recordRun(historyPath(fileCfg), run)
	}
	return nil
}

// recordRun stores run in the history database. Failures are logged, never returned.
func recordRun(path string, run model.Run) {
	log := logger.ForComponent("history")
	st, err := store.Open(path)
	if err != nil {
		log.Warn("failed to open history db", "path", path, "error", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn("failed to close history db", "error", cerr)
		}
	}()
	id, err := st.InsertRun(context.Background(), run)
	if err != nil {
		log.Warn("failed to record run", "error", err)
		return
	}
	log.Debug("recorded run", "id", id, "mode", run.Mode, "sources", len(run.Sources))
}

// loadConfig reads the config file and installs the configured logger.
func loadConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	level, err := logger.ParseLevel(config.StringOr(fileCfg.Log.Level, defaultLogLevel))
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("invalid log level: %w", err)
	}
	format := config.StringOr(fileCfg.Log.Format, defaultLogFormat)
	if format != "text" && format != "json" {
		return config.FileConfig{}, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = format
	logger.Init(logCfg)
	return fileCfg, nil
}

func historyPath(fileCfg config.FileConfig) string {
	return config.StringOr(fileCfg.History.Path, config.DefaultDBPath())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tally configuration
# Uncomment a value to enable it. CLI flags override config values.

[counter]
# unit = %q            # Third column: "chars" or "bytes"
# encoding = %q        # utf-8, utf-16, utf-16le, utf-16be, latin1, windows-1252
# glob = %t              # Expand glob patterns in --file-path values

[history]
# enabled = false        # Record every count in the history database
# path = %q

[log]
# level = %q             # debug, info, warn, error
# format = %q            # text or json
`,
		defaultUnit,
		defaultEncoding,
		defaultGlob,
		config.DefaultDBPath(),
		defaultLogLevel,
		defaultLogFormat,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
