package main

import (
	"os"

	"github.com/pitlane-analytics/pitwall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
