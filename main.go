package main

import "codesync/cmd"

func main() {
	cmd.Execute()
}
