package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"linecalc/internal/cli"
)

// main canonicalizes the command line into an Invocation before any session
// starts, then exits with the semantic code of the run.
func main() {
	inv, err := cli.ParseInvocation(os.Args[1:])
	if err != nil {
		var invErr *cli.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitInternalError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	result, execErr := cli.Execute(ctx, inv, cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	stop()
	if execErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", execErr)
	}
	os.Exit(result.ExitCode)
}
