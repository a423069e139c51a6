package main

import "kg-sync/cmd"

func main() {
	cmd.Execute()
}
