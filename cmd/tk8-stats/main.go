package main

import "github.com/pfrederiksen/tk8-stats/internal/cli"

func main() {
	cli.Execute()
}
