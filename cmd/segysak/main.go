package main

import "segysak/internal/cli"

func main() {
	cli.Execute()
}
