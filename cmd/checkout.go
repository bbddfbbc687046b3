// ABOUTME: Checkout command for the livraria CLI
// ABOUTME: Starts payment and prints or opens the gateway URL

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
	"github.com/pbarbosa/livraria-cli/internal/checkout"
)

var (
	checkoutMethod string
	checkoutOpen   bool
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Start payment for the cart",
	Long: `Start payment for the current cart. The backend returns a payment
gateway URL; by default it is printed so you can open it yourself, with
--open it is opened in the default browser.

Exit codes:
  0 - Payment started
  1 - Rejected (empty cart, not authenticated)
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheckout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
	checkoutCmd.Flags().StringVar(&checkoutMethod, "method", "paypal", "Payment method")
	checkoutCmd.Flags().BoolVar(&checkoutOpen, "open", false, "Open the payment URL in the browser")
}

// runCheckout starts payment and returns exit code
func runCheckout(ctx context.Context, w io.Writer) int {
	_, client, _ := newServices()

	var nav checkout.Navigator = checkout.PrintNavigator{W: w}
	if IsJSONOutput() {
		// The URL goes in the JSON document instead
		nav = checkout.PrintNavigator{W: io.Discard}
	}
	if checkoutOpen {
		nav = checkout.BrowserNavigator{}
	}

	url, err := checkout.New(client, nav).Initiate(ctx, checkoutMethod)
	if err != nil {
		if api.IsAuth(err) {
			fmt.Fprintln(w, "Not signed in. Run: livraria login <email>")
			return 1
		}
		if api.IsValidation(err) {
			fmt.Fprintf(w, "Rejected: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"redirect_url": url}, "", "  ")
		fmt.Fprintln(w, string(data))
	}
	return 0
}
