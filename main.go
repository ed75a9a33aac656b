package main

import "github.com/jarlaunch/jarl/cmd"

func main() {
	cmd.Execute()
}
