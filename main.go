package main

import "github.com/modelgen/modelgen/cmd"

func main() {
	cmd.Execute()
}
