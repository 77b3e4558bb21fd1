package main

import "github.com/edusuite/edusuite/cmd"

func main() {
	cmd.Execute()
}
