package main

import "github.com/mira-markets/mira-engine/cmd"

func main() {
	cmd.Execute()
}
