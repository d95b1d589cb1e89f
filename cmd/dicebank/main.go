package main

import "github.com/mattjh/dicebank/internal/cli"

func main() {
	cli.Execute()
}
