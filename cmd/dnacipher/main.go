package main

import (
	"os"

	"github.com/Danishprabhu04/image-encrypt/cmd/dnacipher/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
