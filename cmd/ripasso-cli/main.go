package main

import "ripasso/cmd/ripasso-cli/cmd"

func main() {
	cmd.Execute()
}
