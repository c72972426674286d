// Package main is the entry point for the catalogue importer.
package main

import (
	"fmt"
	"os"

	"github.com/mamadbah2/salesrep/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
