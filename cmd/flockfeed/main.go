package main

import "github.com/pageza/flockfeed/backend/cmd/flockfeed/commands"

func main() {
	commands.Execute()
}
