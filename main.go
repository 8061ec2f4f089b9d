package main

import "github.com/nwarren/reps/cmd"

func main() {
	cmd.Execute()
}
