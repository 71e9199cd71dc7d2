package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-blog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "blog:", err)
		os.Exit(1)
	}
}
