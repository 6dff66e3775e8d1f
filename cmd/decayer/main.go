package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), userMessage(err))
		os.Exit(1)
	}
}
