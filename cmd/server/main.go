package main

import "github.com/turtacn/metricsvc/cmd/cli"

func main() {
	cli.Execute()
}
