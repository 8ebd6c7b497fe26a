package main

import (
	"os"

	"loan-calc/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout))
}
