package main

import (
	"fmt"
	"os"

	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd"
	"github.com/samratjha96/bakbak-sub001/internal/config"
)

func main() {
	// Load .env and report key availability early so a misconfigured
	// environment is visible before any command runs.
	if _, err := config.InitializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
