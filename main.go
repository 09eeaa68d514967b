package main

import "github.com/cmmoran/dtsgen/cmd"

func main() {
	cmd.Execute()
}
