package main

import "github.com/akarlsen/githist/cmd"

func main() {
	cmd.Execute()
}
