package main

import "grapher/internal/cli"

func main() {
	cli.Execute()
}
