package main

import (
	"os"

	"bookcat/internal/cli"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
