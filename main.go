package main

import "github.com/tamkeenai/careerd/internal/cli"

func main() {
	cli.Execute()
}
