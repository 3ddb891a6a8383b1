package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quartershq/quarters/internal/auth"
	"github.com/quartershq/quarters/internal/logger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current sign-in status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	provider := auth.NewProvider(cfg.AuthURL, cfg.AuthAnonKey)
	bridge := auth.NewBridge(provider, cfg)

	session := bridge.Restore(context.Background())
	if session == nil {
		fmt.Println("Not signed in. Run 'quarters login' to sign in.")
		return nil
	}
	fmt.Printf("Signed in as %s\n", session.User.Email)
	fmt.Printf("  session expires: %s\n", session.Expiry().Format(time.RFC3339))
	fmt.Printf("  config dir: %s\n", cfg.Dir)
	if cfg.NoSessionCache {
		fmt.Println("  session caching: disabled")
	}
	return nil
}
