package main

import "github.com/jhoicas/foodcart-api/cmd/storectl/commands"

func main() {
	commands.Execute()
}
