package main

import "github.com/mcoot/memorygame-go/internal/cli"

func main() {
	cli.Execute()
}
