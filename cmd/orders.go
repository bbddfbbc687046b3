// ABOUTME: Orders commands for the livraria CLI
// ABOUTME: Lists order history and fetches invoices

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/orders"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your order history",
	Long: `List your order history, most recent first.

Exit codes:
  0 - Success
  1 - Not authenticated
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runOrders(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var invoiceCmd = &cobra.Command{
	Use:   "invoice <order-id>",
	Short: "Show the invoice for an order",
	Long: `Show the invoice for one of your orders.

Orders that are not yours or do not exist are both reported as not found.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInvoice(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(invoiceCmd)
}

// runOrders fetches and prints the order history, returning exit code
func runOrders(ctx context.Context, w io.Writer) int {
	_, client, _ := newServices()

	history, err := orders.New(client).History(ctx)
	if err != nil {
		return ordersError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(history, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatOrdersHuman(history))
	return 0
}

// runInvoice fetches and prints one invoice, returning exit code
func runInvoice(ctx context.Context, w io.Writer, orderArg string) int {
	orderID, err := strconv.Atoi(orderArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid order id %q\n", orderArg)
		return 2
	}

	_, client, _ := newServices()
	invoice, err := orders.New(client).Invoice(ctx, orderID)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Fprintf(w, "Order %d not found.\n", orderID)
			return 1
		}
		return ordersError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(invoice, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatInvoiceHuman(invoice))
	return 0
}

// ordersError maps an API error to output and exit code
func ordersError(w io.Writer, err error) int {
	if api.IsAuth(err) {
		fmt.Fprintln(w, "Not signed in. Run: livraria login <email>")
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// formatOrdersHuman formats the history as an aligned table
func formatOrdersHuman(history []api.Order) string {
	if len(history) == 0 {
		return "No orders yet."
	}

	out := fmt.Sprintf("%-6s %-22s %-12s %12s\n", "ID", "Created", "Status", "Total")
	for _, o := range history {
		out += fmt.Sprintf("%-6d %-22s %-12s %12.2f\n", o.ID, o.CreatedAt, o.Status, o.Total)
	}
	return out + fmt.Sprintf("\n%d order(s)", len(history))
}

// formatInvoiceHuman formats one invoice
func formatInvoiceHuman(inv *api.Invoice) string {
	out := fmt.Sprintf("Invoice for order #%d\n", inv.OrderID)
	out += fmt.Sprintf("Status:   %s\n", inv.Status)
	out += fmt.Sprintf("Created:  %s\n", inv.CreatedAt)
	out += fmt.Sprintf("Customer: %s <%s>\n\n", inv.User.Username, inv.User.Email)

	out += fmt.Sprintf("%-40s %5s %12s\n", "Title", "Qty", "Price")
	for _, item := range inv.Items {
		out += fmt.Sprintf("%-40s %5d %12.2f\n", clip(item.BookTitle, 40), item.Quantity, item.Price)
	}
	return out + fmt.Sprintf("\nTotal: R$%.2f", inv.Total)
}
