package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/config"
	"github.com/existflow/tempo/internal/logger"
	"github.com/existflow/tempo/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Tempo - Terminal client for the Tempo project tracker",
	Long: `Tempo is a terminal client for the Tempo project-management service:
a weekly timesheet grid and a task board over the same projects.

Run 'tempo' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
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
		if cmd.Flags().Changed("server") {
			cfg.ServerURL = serverURL
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfgLoaded = cfg
		logger.Info("Tempo started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		session, err := api.LoadSession(cfg.ServerURL)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if !session.LoggedIn() {
			fmt.Println("Not logged in. Run: tempo login")
			return nil
		}

		client := api.NewClient(session)

		logger.Info("Launching TUI")
		m := tui.NewModel(client, session, cfg.StartOfWeek())
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		if !session.LoggedIn() {
			fmt.Println("Session expired. Run: tempo login")
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Tempo exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// cfgLoaded is populated by PersistentPreRunE so subcommands share one config
var cfgLoaded *config.Config

func loadedConfig() *config.Config {
	if cfgLoaded != nil {
		return cfgLoaded
	}
	return config.DefaultConfig()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Tempo server URL")

	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(logHoursCmd)
}
