package main

import "cosmicgarden/cmd/client/cmd"

func main() {
	cmd.Execute()
}
