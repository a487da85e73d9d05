package main

import "flashcut/cmd"

func main() {
	cmd.Execute()
}
