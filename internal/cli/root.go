package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskpad/internal/config"
	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	dbPath     string

	// cfg is the effective configuration for the running command
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taskpad",
	Short: "Taskpad - a priority board for your todo list",
	Long: `Taskpad keeps a todo list on a board with one column per priority
(high, medium, low) and a column for completed work.

Run 'taskpad' without arguments to launch the interactive board.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		var err error
		cfg, err = config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		// --db only applies to this run
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Taskpad started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeDB, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		// Piped output gets the plain board instead of the TUI
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			logger.Debug("Stdout is not a terminal, printing board")
			printBoard(cmd.OutOrStdout(), s.Snapshot(), now())
			return nil
		}

		logger.Info("Launching TUI")
		m := tui.NewModel(s, cfg, tui.WithContext(cmd.Context()))
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Taskpad exiting", logger.F("command", cmd.Name()))
		_ = logger.Close()
	},
}

// ExecuteContext runs the root command with ctx, which is handed to store
// calls and the TUI
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the task database (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(configCmd)
}
