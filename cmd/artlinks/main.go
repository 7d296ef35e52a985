package main

import "github.com/obstacleb/artlinks-data/internal/cli"

func main() {
	cli.Execute()
}
