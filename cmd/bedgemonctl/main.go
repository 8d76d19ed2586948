package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/bedgemon/internal/cli"
	"github.com/2beens/bedgemon/internal/logging"

	log "github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	log.SetOutput(os.Stderr)
	logLevel := os.Getenv("BEDGEMON_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}
	log.SetLevel(logging.GetLevel(logLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
