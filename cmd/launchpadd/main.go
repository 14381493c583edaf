package main

import (
	"github.com/Kayanski/launchpad/internal/cli"
)

func main() {
	cli.Execute()
}
