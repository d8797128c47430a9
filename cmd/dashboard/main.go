package main

import "logindash/cmd/dashboard/cmd"

func main() {
	cmd.Execute()
}
