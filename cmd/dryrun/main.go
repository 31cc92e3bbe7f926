package main

import (
	"fmt"
	"os"

	"github.com/dryrunbot/dryrun/cmd/dryrun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
