package main

import (
	"fmt"
	"os"

	"github.com/modfold/modfold/cmd/modfold"
	"github.com/modfold/modfold/pkg/style"
)

func main() {
	rootCmd := modfold.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewTerminalRenderer()
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
