package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/rohmanhakim/ikea-catalog/internal/build"
	"github.com/rohmanhakim/ikea-catalog/internal/cli"
)

func main() {
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(build.FullVersion()),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
