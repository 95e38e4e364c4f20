package main

import "fitsocial/cmd/fitctl/commands"

func main() {
	commands.Execute()
}
