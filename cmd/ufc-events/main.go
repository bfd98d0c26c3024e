package main

import "github.com/pfrederiksen/ufc-events/internal/cli"

func main() {
	cli.Execute()
}
