package main

import (
	"os"

	"github.com/Brandonkhumalo/cachetrace/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
