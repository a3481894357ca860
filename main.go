package main

import "github.com/grihastudio/griha/cmd"

func main() {
	cmd.Execute()
}
