package main

import "github.com/focusmate/focusmate-cli/cmd"

func main() {
	cmd.Execute()
}
