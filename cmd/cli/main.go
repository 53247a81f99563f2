// prodsum - Weekly Productivity Summary Tool
//
// prodsum aggregates the productivity logs written by your tracker over
// the last week and turns them into an analysis using a locally served
// model, falling back to a paste-able prompt when none is available.
package main

import (
	"os"

	"prodsum/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
