package main

import "sdkswitcher/cmd"

func main() {
	cmd.Execute()
}
