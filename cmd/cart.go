// ABOUTME: Cart commands for the livraria CLI
// ABOUTME: Shows and mutates the server-side cart

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/cart"
)

var cartQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the shopping cart",
	Long: `Show the shopping cart. Requires a stored session (see livraria login).

Exit codes:
  0 - Success
  1 - Not authenticated or request rejected
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, w io.Writer, sync *cart.Synchronizer) int {
			return runCartShow(ctx, w, sync)
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <book-id>",
	Short: "Add a book to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, w io.Writer, sync *cart.Synchronizer) int {
			return runCartAdd(ctx, w, sync, args[0], cartQuantity)
		})
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Change the quantity of a cart line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, w io.Writer, sync *cart.Synchronizer) int {
			return runCartUpdate(ctx, w, sync, args[0], cartQuantity)
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCartCommand(func(ctx context.Context, w io.Writer, sync *cart.Synchronizer) int {
			return runCartRemove(ctx, w, sync, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd, cartUpdateCmd, cartRemoveCmd)
	cartAddCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "Quantity to add")
	cartUpdateCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "New quantity")
}

// runCartCommand handles the signal context and exit code plumbing shared by
// the cart subcommands.
func runCartCommand(run func(ctx context.Context, w io.Writer, sync *cart.Synchronizer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, client, _ := newServices()
	if exitCode := run(ctx, os.Stdout, cart.New(client)); exitCode != 0 {
		os.Exit(exitCode)
	}
}

// runCartShow prints the cart and returns exit code
func runCartShow(ctx context.Context, w io.Writer, sync *cart.Synchronizer) int {
	if err := sync.Reload(ctx); err != nil {
		return cartError(w, err)
	}
	printCart(w, sync)
	return 0
}

// runCartAdd adds a book and prints the resulting cart
func runCartAdd(ctx context.Context, w io.Writer, sync *cart.Synchronizer, bookArg string, quantity int) int {
	bookID, err := strconv.Atoi(bookArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book id %q\n", bookArg)
		return 2
	}
	if err := sync.Add(ctx, bookID, quantity); err != nil {
		return cartError(w, err)
	}
	if err := sync.Reload(ctx); err != nil {
		return cartError(w, err)
	}
	printCart(w, sync)
	return 0
}

// runCartUpdate changes a line quantity and prints the resulting cart
func runCartUpdate(ctx context.Context, w io.Writer, sync *cart.Synchronizer, itemArg string, quantity int) int {
	itemID, err := strconv.Atoi(itemArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid item id %q\n", itemArg)
		return 2
	}
	if err := sync.UpdateQuantity(ctx, itemID, quantity); err != nil {
		if errors.Is(err, cart.ErrQuantityTooLow) {
			fmt.Fprintln(w, "Error: quantity must be at least 1")
			return 1
		}
		return cartError(w, err)
	}
	printCart(w, sync)
	return 0
}

// runCartRemove deletes a line and prints the resulting cart
func runCartRemove(ctx context.Context, w io.Writer, sync *cart.Synchronizer, itemArg string) int {
	itemID, err := strconv.Atoi(itemArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid item id %q\n", itemArg)
		return 2
	}
	if err := sync.Remove(ctx, itemID); err != nil {
		return cartError(w, err)
	}
	printCart(w, sync)
	return 0
}

// cartError maps an API error to output and exit code
func cartError(w io.Writer, err error) int {
	if api.IsAuth(err) {
		fmt.Fprintln(w, "Not signed in. Run: livraria login <email>")
		return 1
	}
	if api.IsValidation(err) || api.IsNotFound(err) {
		fmt.Fprintf(w, "Rejected: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// printCart renders the synchronizer cache
func printCart(w io.Writer, sync *cart.Synchronizer) {
	items := sync.Items()

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(items, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}

	fmt.Fprintf(w, "%-5s %-40s %10s %5s %12s\n", "ID", "Title", "Price", "Qty", "Subtotal")
	for _, item := range items {
		fmt.Fprintf(w, "%-5d %-40s %10.2f %5d %12.2f\n",
			item.ID, clip(item.Book.Title, 40), item.Book.Price, item.Quantity,
			item.Book.Price*float64(item.Quantity))
	}
	fmt.Fprintf(w, "\nTotal: R$%.2f\n", sync.Total())
}
