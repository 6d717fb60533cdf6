package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/pthm/gtlint/internal/cmd"
	"github.com/pthm/gtlint/internal/version"
)

func main() {
	err := fang.Execute(context.Background(), cmd.NewRootCmd(), fang.WithVersion(version.Short()))
	if err != nil {
		os.Exit(1)
	}
}
