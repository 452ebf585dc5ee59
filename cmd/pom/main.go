package main

import (
	"os"

	"github.com/piepero/rusty-pom/internal/cli"
	"github.com/piepero/rusty-pom/pkg/logging"
)

func main() {
	if level := os.Getenv("POM_LOG_LEVEL"); level != "" {
		logging.SetGlobal(logging.NewLogger(logging.ParseLevel(level)))
	}
	cli.Execute()
}
