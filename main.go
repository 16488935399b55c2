package main

import (
	"ucb-locker/cli"
)

func main() {
	cli.Start()
}
