// Package main provides the brickyard CLI for orchestrating dockerized demo
// app instances: starting them, generating demo data, and seeding them
// through their public APIs.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/brickyard/internal/cmd/brickyard"
)

func main() {
	log.SetPrefix("[BRICKYARD] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := brickyard.Main(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
