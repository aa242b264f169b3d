package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		fmt.Fprintln(os.Stderr, "directory:", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.ErrorLog(ctx, "Server stopped with error", err)
		os.Exit(1)
	}
}
