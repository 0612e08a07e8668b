package main

import "github.com/flowgrade/flowgrade/cmd"

func main() {
	cmd.Execute()
}
