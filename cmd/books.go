// ABOUTME: Books command for the livraria CLI
// ABOUTME: Lists the catalog with optional title or author search

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

var booksSearch string

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the book catalog",
	Long:  `List the book catalog, optionally filtered by a title or author search.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooks(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.Flags().StringVar(&booksSearch, "search", "", "Filter by title or author")
}

// runBooks fetches and prints the catalog, returning exit code
func runBooks(ctx context.Context, w io.Writer) int {
	_, client, _ := newServices()

	books, err := client.ListBooks(ctx, booksSearch)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(books, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBooksHuman(books))
	return 0
}

// formatBooksHuman formats the catalog as an aligned table
func formatBooksHuman(books []api.Book) string {
	if len(books) == 0 {
		return "No books found."
	}

	out := fmt.Sprintf("%-5s %-40s %-25s %10s\n", "ID", "Title", "Author", "Price")
	for _, b := range books {
		out += fmt.Sprintf("%-5d %-40s %-25s %10.2f\n", b.ID, clip(b.Title, 40), clip(b.Author, 25), b.Price)
	}
	return out + fmt.Sprintf("\n%d book(s)", len(books))
}

// clip shortens s to at most max runes with an ellipsis
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
