package session

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/stopsignal/internal/config"
	"github.com/Iron-Ham/stopsignal/internal/errors"
	"github.com/Iron-Ham/stopsignal/internal/event"
	"github.com/Iron-Ham/stopsignal/internal/experiment"
	"github.com/Iron-Ham/stopsignal/internal/logging"
	"github.com/Iron-Ham/stopsignal/internal/record"
	"github.com/Iron-Ham/stopsignal/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a task session",
	Long: `Run a task session in the terminal.

The session opens on an instruction screen and waits for a key press. Each
block runs its trials back to back and ends on a break screen; after the
last block the results table can be exported with 'e' or by clicking the
export button.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

var (
	seedFlag      uint64
	exportDirFlag string
)

// RegisterRunCmd registers the run command with the given parent command.
func RegisterRunCmd(parent *cobra.Command) {
	addRunFlags(runCmd)
	parent.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&seedFlag, "seed", 0, "Seed for trial order and ISI jitter (overrides task.seed)")
	cmd.Flags().StringVar(&exportDirFlag, "out", "", "Directory for the exported table (overrides export.dir)")
}

// seedSalt decorrelates the two PCG state words derived from one seed.
const seedSalt = 0x9E3779B97F4A7C15

// Session bundles everything a single task run needs.
type Session struct {
	ID      string
	Seed    uint64
	Dir     string
	Machine *experiment.Machine
	Sink    *record.FileSink
	Logger  *logging.Logger
}

// Prepare builds a Session from cfg. A zero task seed is replaced by one
// derived from now, and the chosen seed is logged so the run can be replayed.
func Prepare(cfg *config.Config, now time.Time) (*Session, error) {
	seed := cfg.Task.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}

	id := now.Format("20060102-150405")
	dir := filepath.Join(cfg.Logging.SessionsDir(), id)

	logger := CreateLogger(dir, cfg).WithSession(id)

	bus := event.NewBus()
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		logger.Error("event handler panicked",
			"event_type", eventType,
			"panic", fmt.Sprint(recovered),
			"stack", string(stack),
		)
	})
	subscribeEventLogging(bus, logger)

	machine, err := experiment.New(
		cfg.Params(),
		rand.New(rand.NewPCG(seed, seed^seedSalt)),
		experiment.WithBus(bus),
		experiment.WithLogger(logger),
	)
	if err != nil {
		_ = logger.Close()
		// Parameter problems are reported as-is so the operator can fix the config.
		if errors.IsUserFacing(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Info("session prepared",
		"seed", seed,
		"trials_per_set", cfg.Task.TrialsPerSet,
		"total_sets", cfg.Task.TotalSets,
		"export_dir", cfg.Export.Dir,
	)

	return &Session{
		ID:      id,
		Seed:    seed,
		Dir:     dir,
		Machine: machine,
		Sink:    record.NewFileSink(cfg.Export.Dir, cfg.Export.Prefix),
		Logger:  logger,
	}, nil
}

// Close releases the session's log file.
func (s *Session) Close() error {
	return s.Logger.Close()
}

// Summary writes the end-of-run report to w.
func (s *Session) Summary(w io.Writer) {
	m := s.Machine
	if path := s.Sink.Path(); m.Exported() && path != "" {
		fmt.Fprintf(w, "Saved %d trials to %s\n", len(m.Outcomes()), path)
		return
	}
	if m.State() == experiment.StateEnd {
		fmt.Fprintf(w, "Warning: session finished but %d trials were not exported\n", len(m.Outcomes()))
		return
	}
	fmt.Fprintf(w, "Session stopped after %d of %d trials; nothing was exported\n", m.Completed(), m.TotalTrials())
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Task.Seed = seedFlag
	}
	if exportDirFlag != "" {
		cfg.Export.Dir = exportDirFlag
	}

	s, err := Prepare(cfg, time.Now())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	app := tui.New(s.Machine, s.Sink, tui.Options{
		FrameInterval: cfg.Timing.FrameInterval(),
		Logger:        s.Logger,
	})
	if err := app.Run(); err != nil {
		s.Logger.Error("display failed", "error", err)
		return fmt.Errorf("session display failed: %w", err)
	}

	s.Summary(cmd.OutOrStdout())
	return nil
}

// CreateLogger creates a logger for the session directory. If logging is
// disabled or the log file cannot be opened, it returns a NopLogger.
func CreateLogger(sessionDir string, cfg *config.Config) *logging.Logger {
	// Check if logging is enabled
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	logger, err := logging.NewLogger(sessionDir, cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		// Log creation failure shouldn't prevent the session from starting
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}

	return logger
}

// subscribeEventLogging writes every bus event to the debug log.
func subscribeEventLogging(bus *event.Bus, logger *logging.Logger) {
	bus.Subscribe("block.started", func(e event.Event) {
		ev := e.(event.BlockStartedEvent)
		logger.WithBlock(ev.Block).Info("block started",
			"total_blocks", ev.TotalBlocks,
			"trials", ev.Trials,
		)
	})

	bus.Subscribe("block.completed", func(e event.Event) {
		ev := e.(event.BlockCompletedEvent)
		logger.WithBlock(ev.Block).Info("block completed",
			"total_blocks", ev.TotalBlocks,
			"trials_completed", ev.Completed,
		)
	})

	bus.Subscribe("trial.completed", func(e event.Event) {
		ev := e.(event.TrialCompletedEvent)
		logger.WithBlock(ev.Block).Debug("trial completed",
			"trial", ev.Trial,
			"type", ev.Type,
			"direction", ev.Direction,
			"responded", ev.Responded,
			"signal", ev.Signal,
			"ssd_ms", ev.SSD.Milliseconds(),
			"rt_ms", ev.ReactionTime.Milliseconds(),
			"signal_ms", ev.SignalDelay.Milliseconds(),
		)
	})

	bus.Subscribe("staircase.updated", func(e event.Event) {
		ev := e.(event.StaircaseUpdatedEvent)
		logger.Debug("stop-signal delay updated",
			"previous_ms", ev.Previous.Milliseconds(),
			"current_ms", ev.Current.Milliseconds(),
			"responded", ev.Responded,
		)
	})

	bus.Subscribe("session.ended", func(e event.Event) {
		ev := e.(event.SessionEndedEvent)
		logger.Info("session ended",
			"trials", ev.Trials,
			"final_ssd_ms", ev.FinalSSD.Milliseconds(),
			"stop_successes", ev.StopSuccesses,
			"stop_failures", ev.StopFailures,
		)
	})

	bus.Subscribe("session.exported", func(e event.Event) {
		ev := e.(event.SessionExportedEvent)
		if ev.Err != nil {
			logger.Warn("export failed", "rows", ev.Rows, "error", ev.Err)
			return
		}
		logger.Info("session exported", "rows", ev.Rows)
	})
}
