package main

import "github.com/talkincode/flowershop/cmd/flowershop/commands"

func main() {
	commands.Execute()
}
