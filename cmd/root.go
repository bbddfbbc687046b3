// ABOUTME: Root command for the livraria CLI
// ABOUTME: Handles global flags, env loading and shared service wiring

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "livraria",
	Short: "Terminal client for the Livraria bookstore",
	Long: `livraria is a terminal client for the Livraria online bookstore.

Running it without a subcommand opens the interactive storefront. The
subcommands cover the same operations for scripting: browsing the catalog,
managing the cart, checking out and inspecting past orders.

Environment Variables:
  LIVRARIA_API_URL     Backend API URL (default: http://localhost:8000)
  LIVRARIA_CONFIG_DIR  Where the session credential is stored
  LIVRARIA_DEBUG       Set to 1 to write a debug log to the config dir`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides LIVRARIA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadDotEnv loads a .env file from the working directory when present.
// Real environment variables win over .env entries.
func loadDotEnv() {
	_ = godotenv.Load()
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("LIVRARIA_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// configDir returns where the session credential lives
func configDir() string {
	if dir := os.Getenv("LIVRARIA_CONFIG_DIR"); dir != "" {
		return dir
	}
	return session.DefaultConfigDir()
}

// newServices wires the credential store, API client and session manager
// shared by every command.
func newServices() (*session.Store, *api.Client, *session.Manager) {
	store := session.NewStore(configDir())
	client := api.New(GetAPIURL(), store)
	return store, client, session.NewManager(store, client)
}
