package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/locvowork/employee_directory/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Commands report their own ExitErrors; anything else is a usage error.
	err := cli.NewRootCommand().ExecuteContext(ctx)
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		err = cli.WrapExitError(cli.ExitCommandError, "usage", err)
	}
	stop()
	os.Exit(cli.GetExitCode(err))
}
