package main

import (
	"os"

	"github.com/lyraproj/puppet-catalog/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
