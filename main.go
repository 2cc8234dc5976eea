package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nthornton/blink/internal/config"
	"github.com/nthornton/blink/internal/logging"
	"github.com/nthornton/blink/internal/playback"
	"github.com/nthornton/blink/internal/progress"
	"github.com/nthornton/blink/internal/reader"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagWPM   int
	flagPause float64
	flagFresh bool
)

var rootCmd = &cobra.Command{
	Use:   "blink [file]",
	Short: "Word-at-a-time speed reader for PDF and EPUB files",
	Long: "Blink reads a PDF or EPUB one word at a time at a configurable pace,\n" +
		"pausing briefly at paragraph breaks and remembering where you stopped.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runRead,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("blink %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.Flags().IntVarP(&flagWPM, "wpm", "w", 0, "words per minute (100-1000, overrides config)")
	rootCmd.Flags().Float64Var(&flagPause, "pause", -1, "extra pause at paragraph breaks in seconds (0-5, overrides config)")
	rootCmd.Flags().BoolVar(&flagFresh, "fresh", false, "ignore the saved reading position")
	rootCmd.AddCommand(versionCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := config.Load("")
	if flagWPM != 0 {
		cfg.WPM = flagWPM
	}
	if flagPause >= 0 {
		cfg.ParagraphPauseSeconds = flagPause
	}
	cfg = cfg.Normalize()

	store, storeErr := progress.NewStore()

	logger, err := logging.New(filepath.Join(progress.StateDir(), "blink.log"), cfg.LogLevel)
	if err != nil {
		logger = logging.Nop()
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Warn("config unreadable, using defaults", zap.Error(cfgErr))
	}
	if storeErr != nil {
		logger.Warn("progress store unavailable, position will not be saved", zap.Error(storeErr))
		store = nil
	}

	path, err := progress.NormalizePath(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", args[0], err)
	}

	stream, err := reader.Open(path)
	if err != nil {
		logger.Error("open failed", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Info("document opened",
		zap.String("path", path),
		zap.Int("tokens", stream.Len()),
		zap.Int("words", stream.Words()))

	pause := time.Duration(cfg.ParagraphPauseSeconds * float64(time.Second))
	engine := playback.NewEngine(stream, cfg.WPM, pause)

	if !flagFresh && store != nil {
		if idx := store.Resume(path, stream.Len()); idx > 0 {
			engine.Seek(idx)
			logger.Info("resuming", zap.Int("cursor", idx))
		}
	}

	m := newModel(engine, store, path, stream.Len(), cfg.Theme, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running reader: %w", err)
	}

	if fm, ok := final.(model); ok {
		fm.shutdown(cfg)
	}
	return nil
}

// shutdown runs the session-close hooks: a final checkpoint and flush,
// plus persisting the last-used settings. Failures here lose progress
// or settings but never fail the session.
func (m model) shutdown(cfg config.Config) {
	if m.store != nil {
		m.store.Checkpoint(m.path, m.engine.Cursor(), m.streamLen)
		if err := m.store.Flush(); err != nil {
			m.log.Warn("progress flush failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "warning: could not save reading position: %v\n", err)
		} else {
			m.log.Info("progress saved", zap.Int("cursor", m.engine.Cursor()))
		}
	}

	cfg.WPM = m.engine.Rate()
	cfg.ParagraphPauseSeconds = m.engine.ParagraphPause().Seconds()
	if err := config.Save("", cfg); err != nil {
		m.log.Warn("config save failed", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
