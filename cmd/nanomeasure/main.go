// Command nanomeasure replays measurement sessions without the GUI.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"nano-analyzer/internal/version"
)

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
