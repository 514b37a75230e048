// Package main is the entry point for the pulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/pulse/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
