package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/rwc/internal/config"
	"github.com/harrison/rwc/internal/logger"
	"github.com/harrison/rwc/internal/models"
	"github.com/harrison/rwc/internal/pipeline"
	"github.com/harrison/rwc/internal/report"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rwc
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rwc [flags] [FILE...]",
		Short: "Print newline, word, byte and character counts for each file",
		Long: `rwc prints newline, word, byte and character counts for each FILE.

With no FILE, or when FILE is -, read standard input. A FILE containing any
of "*?[{\" is a glob pattern: "*", "?", "[...]" and "{a,b}" are supported, and
a "**" path segment matches across directories. A glob that matches nothing
prints nothing. A FILE without glob characters is opened as given, so a
missing file is reported as an error. Files are counted concurrently and
results are printed as each file finishes, so output order is not fixed.

If none of -l, -w, -c, -m is given, rwc prints lines, words and bytes.

Configuration is loaded from .rwc/config.yaml (or $RWC_CONFIG) if present.
CLI flags override configuration file settings.

Examples:
  rwc notes.txt                 # lines, words, bytes
  rwc -l 'src/**/*.go'          # line count of every Go file under src
  rwc -m -                      # characters on standard input
  rwc -d --total 'docs/*'       # include directories and a total line
  rwc --report run.yaml '*.md'  # also write a YAML report`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE:    runRoot,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("lines", "l", false, "print the newline counts")
	cmd.Flags().BoolP("words", "w", false, "print the word counts")
	cmd.Flags().BoolP("bytes", "c", false, "print the byte counts")
	cmd.Flags().BoolP("chars", "m", false, "print the character counts")
	cmd.Flags().BoolP("dirs", "d", false, "print a 'dir <name>' line for directory arguments")
	cmd.Flags().Bool("total", false, "print a total line after all files")
	cmd.Flags().String("report", "", "write a YAML report of the run to this file")
	cmd.Flags().String("config", "", "Path to config file (default: .rwc/config.yaml)")
	cmd.Flags().String("log-level", "", "diagnostic verbosity: debug, info, warn, error")
	cmd.Flags().Int("chunk-size", 0, "read size in bytes used when scanning content")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	showBytes, _ := cmd.Flags().GetBool("bytes")
	showWords, _ := cmd.Flags().GetBool("words")
	showLines, _ := cmd.Flags().GetBool("lines")
	showChars, _ := cmd.Flags().GetBool("chars")
	opts := models.NewOptions(showBytes, showWords, showLines, showChars, cfg.ShowDirs)

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{models.StdinMarker}
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), "rwc", cfg.LogLevel)
	log.LogDebug(fmt.Sprintf("counting %d pattern(s), chunk size %d", len(patterns), cfg.ChunkSize))

	started := time.Now()
	outcome, err := pipeline.Run(pipeline.Config{
		Patterns:  patterns,
		Options:   opts,
		Stdin:     cmd.InOrStdin(),
		Stdout:    cmd.OutOrStdout(),
		Logger:    log,
		ChunkSize: cfg.ChunkSize,
		Total:     cfg.Total,
		Record:    cfg.ReportPath != "",
	})
	if err != nil {
		return err
	}

	log.LogDebug(fmt.Sprintf("done in %s: %d file(s), %d director(ies), %d failure(s)",
		time.Since(started).Round(time.Millisecond),
		outcome.Summary.Files, outcome.Summary.Directories, outcome.Summary.Failures))

	if cfg.ReportPath != "" {
		rep := report.Build(started, opts, outcome.Results, outcome.Summary)
		if err := rep.Write(cfg.ReportPath); err != nil {
			// Output already succeeded; a failed report does not change the exit status.
			log.LogWarn(fmt.Sprintf("report not written: %v", err))
		} else {
			log.LogInfo("report written to " + cfg.ReportPath)
		}
	}
	return nil
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error
	if configPath == "" {
		cfg, err = config.LoadConfigFromDir(".")
		configPath = config.DefaultPath(".")
	} else {
		cfg, err = config.LoadConfig(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	var chunkSizePtr *int
	if cmd.Flags().Changed("chunk-size") {
		v, _ := cmd.Flags().GetInt("chunk-size")
		chunkSizePtr = &v
	}
	var showDirsPtr *bool
	if cmd.Flags().Changed("dirs") {
		v, _ := cmd.Flags().GetBool("dirs")
		showDirsPtr = &v
	}
	var totalPtr *bool
	if cmd.Flags().Changed("total") {
		v, _ := cmd.Flags().GetBool("total")
		totalPtr = &v
	}
	var reportPtr *string
	if cmd.Flags().Changed("report") {
		v, _ := cmd.Flags().GetString("report")
		reportPtr = &v
	}

	cfg.MergeWithFlags(logLevelPtr, chunkSizePtr, showDirsPtr, totalPtr, reportPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
