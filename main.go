package main

import (
	"os"

	"github.com/weavemark/weavemark/internal/cli"
)

func main() {
	code, err := cli.Run(os.Args, nil)
	if err != nil && code == 0 {
		code = 1
	}
	os.Exit(code)
}
