package main

import (
	"context"
	"fmt"
	"os"

	"github.com/filetug/estorage/pkg/cli"
	"github.com/spf13/cobra"
)

var osExit = os.Exit

func main() {
	run(newRootCmd())
}

var newRootCmd = cli.NewRootCmd

type executor interface {
	ExecuteContext(ctx context.Context) error
}

var _ executor = (*cobra.Command)(nil)

var run = func(cmd executor) {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "estorage: %v\n", err)
		osExit(1)
	}
}
