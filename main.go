package main

import "github.com/mzml2isa/mzml2isa/internal/command"

func main() {
	command.Execute()
}
