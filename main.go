package main

import "github.com/fableworks/storyteller/cmd"

func main() {
	cmd.Execute()
}
