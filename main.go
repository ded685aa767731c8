package main

import cmd "github.com/rohmanhakim/arnie-quotes/internal/cli"

func main() {
	cmd.Execute()
}
