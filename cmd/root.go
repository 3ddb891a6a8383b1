package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/auth"
	"github.com/quartershq/quarters/internal/config"
	"github.com/quartershq/quarters/internal/console"
	"github.com/quartershq/quarters/internal/logger"
	"github.com/quartershq/quarters/internal/nav"
	"github.com/quartershq/quarters/internal/screens"
)

var (
	debugMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "quarters",
	Short: "Terminal client for the Quarters workspace",
	Long: `Quarters is an interactive terminal client for a shared agent workspace:
browse the pinboard, hire AI teammates, chat with them in threads, and
review workspace files, all from one prompt.`,
	RunE:          runStart,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the interactive session (the default)",
	RunE:  runStart,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(startCmd)
}

func initLogging() {
	if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("quarters %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("quarters %s\n", version)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	provider := auth.NewProvider(cfg.AuthURL, cfg.AuthAnonKey)
	bridge := auth.NewBridge(provider, cfg)

	con := console.New()
	if err := con.Init(); err != nil {
		return fmt.Errorf("error initializing terminal: %w", err)
	}
	defer con.Close()

	ctx := context.Background()
	session, err := bridge.Bootstrap(ctx, con)
	if err != nil {
		return fmt.Errorf("error establishing session: %w", err)
	}
	if session == nil {
		con.Close()
		fmt.Println("Sign-in cancelled.")
		return nil
	}

	client := api.New(cfg.APIURL, bridge)
	handlers := screens.New(ctx, client, con, cfg)
	navigator := nav.New(func() nav.Screen {
		return nav.Home{Session: bridge.ActiveSession()}
	}, handlers.Handle)

	navigator.Run()
	return nil
}

// loadConfig resolves configuration, applies the debug flag, and surfaces
// non-fatal warnings on stderr.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cfg.Debug {
		logger.SetDebug(true)
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return cfg, nil
}
