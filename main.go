package main

import (
	"github.com/hammerspace-solutions/aurora-aws/cmd"
	"os"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
