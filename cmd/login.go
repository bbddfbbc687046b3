// ABOUTME: Login command for the livraria CLI
// ABOUTME: Verifies credentials and persists the session token

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and store the session",
	Long: `Sign in to the bookstore and store the session token.

The password is read from --password, or from stdin when the flag is absent.

Exit codes:
  0 - Signed in
  1 - Invalid credentials
  2 - Error (connectivity, invalid input)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, os.Stdin, args[0], loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (read from stdin when omitted)")
}

// runLogin performs the login and returns exit code
func runLogin(ctx context.Context, w io.Writer, in io.Reader, email, password string) int {
	if password == "" {
		fmt.Fprint(w, "Password: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(w, "Error: no password provided\n")
			return 2
		}
		password = strings.TrimRight(line, "\r\n")
	}

	_, _, sess := newServices()
	if err := sess.Login(ctx, email, password); err != nil {
		if api.IsAuth(err) || api.IsValidation(err) {
			fmt.Fprintf(w, "Login failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := sess.User()
	fmt.Fprintf(w, "Signed in as %s\n", user.Email)
	return 0
}
