package main

import (
	"os"

	"github.com/felixgeelhaar/tasker/internal/infrastructure/cli"
)

func main() {
	os.Exit(cli.Execute())
}
