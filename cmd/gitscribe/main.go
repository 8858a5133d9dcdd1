package main

import (
	"os"

	"github.com/hoanghonghuy/gitscribe/cmd/gitscribe/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
