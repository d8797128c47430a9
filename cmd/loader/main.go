package main

import "logindash/cmd/loader/cmd"

func main() {
	cmd.Execute()
}
