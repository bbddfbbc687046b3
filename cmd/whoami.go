// ABOUTME: Whoami command for the livraria CLI
// ABOUTME: Verifies the stored session and prints the profile

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Verify the stored session against the backend and show the profile.

Exit codes:
  0 - Authenticated
  1 - Not authenticated
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami resolves the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, _, sess := newServices()
	if err := sess.Start(ctx); err != nil && !api.IsAuth(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := sess.User()
	if user == nil {
		fmt.Fprintln(w, "Not signed in.")
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Email: %s\nName:  %s\nCPF:   %s\n", user.Email, user.FullName, user.CPF)
	return 0
}
