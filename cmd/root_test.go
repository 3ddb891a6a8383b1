package cmd

import (
	"strings"
	"testing"
)

func TestVersionTemplate(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    []string
	}{
		{
			name:    "release build",
			version: "1.2.3",
			commit:  "abc1234",
			date:    "2026-08-29",
			want:    []string{"quarters 1.2.3", "commit: abc1234", "built:  2026-08-29"},
		},
		{
			name:    "dev build",
			version: "dev",
			commit:  "none",
			want:    []string{"quarters dev"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo(tt.version, tt.commit, tt.date)
			got := versionTemplate()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("template %q missing %q", got, want)
				}
			}
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"start": false, "login": false, "logout": false, "status": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "quarters" {
		t.Errorf("Use = %q, want quarters", rootCmd.Use)
	}
	if !rootCmd.SilenceUsage || !rootCmd.SilenceErrors {
		t.Error("root command should silence cobra's usage and error output")
	}
	if rootCmd.PersistentFlags().Lookup("debug") == nil {
		t.Error("missing --debug persistent flag")
	}
	if loginCmd.Flags().Lookup("email") == nil || loginCmd.Flags().Lookup("otp") == nil || loginCmd.Flags().Lookup("no-cache") == nil {
		t.Error("login command missing flags")
	}
}
