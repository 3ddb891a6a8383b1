package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quartershq/quarters/internal/auth"
	"github.com/quartershq/quarters/internal/console"
	"github.com/quartershq/quarters/internal/logger"
)

var (
	loginEmail   string
	loginOTP     string
	loginNoCache bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a one-time passcode",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address to send the passcode to")
	loginCmd.Flags().StringVar(&loginOTP, "otp", "", "Passcode to verify without prompting")
	loginCmd.Flags().BoolVar(&loginNoCache, "no-cache", false, "Do not persist the session to disk")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()
	if loginNoCache {
		cfg.NoSessionCache = true
	}

	provider := auth.NewProvider(cfg.AuthURL, cfg.AuthAnonKey)
	bridge := auth.NewBridge(provider, cfg)

	con := console.New()
	if err := con.Init(); err != nil {
		return fmt.Errorf("error initializing terminal: %w", err)
	}

	session, err := bridge.InlineLogin(context.Background(), con, auth.LoginOptions{
		Email: loginEmail,
		Code:  loginOTP,
	})
	con.Close()
	if err != nil {
		return fmt.Errorf("error signing in: %w", err)
	}
	if session == nil {
		fmt.Println("Sign-in cancelled.")
		return nil
	}
	fmt.Printf("Signed in as %s\n", session.User.Email)
	return nil
}
