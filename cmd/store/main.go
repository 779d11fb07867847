package main

import "github.com/tair/ai-goat-store/cmd/store/commands"

func main() {
	commands.Execute()
}
