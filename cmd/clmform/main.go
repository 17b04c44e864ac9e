package main

import (
	"os"

	"github.com/goliatone/go-clmform/cmd/clmform/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
