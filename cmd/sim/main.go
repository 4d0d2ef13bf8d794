package main

import (
	"github.com/ardalan-sia/signal-sim/cmd/sim/commands"
)

func main() {
	commands.Execute()
}
