package main

import "github.com/emiliopalmerini/dustlog/internal/cli"

func main() {
	cli.Execute()
}
