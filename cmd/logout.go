package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quartershq/quarters/internal/auth"
	"github.com/quartershq/quarters/internal/logger"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the cached session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	provider := auth.NewProvider(cfg.AuthURL, cfg.AuthAnonKey)
	bridge := auth.NewBridge(provider, cfg)

	ctx := context.Background()
	if bridge.Restore(ctx) == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := bridge.SignOut(ctx); err != nil {
		// The local session is gone regardless.
		fmt.Printf("Signed out locally (server sign-out failed: %v)\n", err)
		return nil
	}
	fmt.Println("Signed out.")
	return nil
}
