package main

import "github.com/rsm-bpintar/choicemc/cmd"

func main() {
	cmd.Execute()
}
