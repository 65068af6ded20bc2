// Package main is the entry point for the sheetctl character tracker
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
