// ABOUTME: Entry point for the livraria CLI
// ABOUTME: Terminal storefront client for the Livraria bookstore backend

package main

import (
	"fmt"
	"os"

	"github.com/pbarbosa/livraria-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
