package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"blogly/service"
)

var exit = os.Exit

func main() {
	exit(RealMain(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// RealMain runs the command line and returns the process exit code.
func RealMain(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := service.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
