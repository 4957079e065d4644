package main

import "hookmap/cmd"

func main() {
	cmd.Execute()
}
