package main

import (
	"context"
	"os"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
