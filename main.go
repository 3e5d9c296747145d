package main

import (
	"os"

	"github.com/projecteru2/uuidstamp/internal/cmd"
)

func main() {
	// cobra has already printed the error to stderr.
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
