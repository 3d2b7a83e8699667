package main

import "github.com/i3keep/i3keep/cmd"

func main() {
	cmd.Execute()
}
