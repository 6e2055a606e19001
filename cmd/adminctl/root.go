package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simp-lee/adminboard/internal/source"
)

var (
	flagAPI         string
	flagEmail       string
	flagPassword    string
	flagPendingFile string
)

var rootCmd = &cobra.Command{
	Use:           "adminctl",
	Short:         "Terminal client for the admin dashboard API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "http://localhost:8080/api/v1", "API base URL")
	rootCmd.PersistentFlags().StringVar(&flagEmail, "email", "", "login email")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "login password")
	rootCmd.PersistentFlags().StringVar(&flagPendingFile, "pending-file", defaultPendingPath(), "file holding queued user creates")

	rootCmd.AddCommand(usersCmd, productsCmd, statsCmd, pendingCmd)
}

// defaultPendingPath places the queue file under the user's cache
// directory so queued creates survive between invocations. Falls back to
// an in-memory queue when no cache directory is available.
func defaultPendingPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "adminctl", "pending.json")
}

// newLocalClient builds an unauthenticated client. Enough for commands
// that only touch the local pending queue.
func newLocalClient() (*source.Client, error) {
	return source.New(source.Config{BaseURL: flagAPI, PendingPath: flagPendingFile})
}

// newSession builds a client and authenticates it with the login flags.
func newSession(ctx context.Context) (*source.Client, error) {
	if flagEmail == "" || flagPassword == "" {
		return nil, fmt.Errorf("--email and --password are required")
	}
	client, err := source.New(source.Config{BaseURL: flagAPI, PendingPath: flagPendingFile})
	if err != nil {
		return nil, err
	}
	if _, err := client.Login(ctx, flagEmail, flagPassword); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return client, nil
}
