package main

import (
	"os"

	"github.com/iotsgen/iotsgen/cmd/iotsgen/commands"
)

func main() {
	os.Exit(commands.Execute())
}
