// ABOUTME: Browse command for the livraria CLI
// ABOUTME: Launches the interactive TUI storefront

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pbarbosa/livraria-cli/internal/debuglog"
	"github.com/pbarbosa/livraria-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive storefront",
	Long:  `Open the interactive terminal storefront. This is also what running livraria without a subcommand does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// runBrowse starts the TUI over a fresh session
func runBrowse() error {
	if os.Getenv("LIVRARIA_DEBUG") == "1" {
		if err := debuglog.Init(configDir()); err == nil {
			defer debuglog.Close()
		}
	}

	_, client, sess := newServices()
	return tui.Run(client, sess)
}
