package main

import "rinksync/cmd"

func main() {
	cmd.Execute()
}
