package main

import "github.com/example/bellaroma/cmd"

func main() {
	cmd.Execute()
}
