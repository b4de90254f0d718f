// Package main is the entry point for the folioctl admin tool.
package main

import (
	"os"

	"github.com/folio-hub/folio-server/cmd/folioctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
