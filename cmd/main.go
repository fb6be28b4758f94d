package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// @title           Flight Fare Sweeper API
// @version         0.0.1
// @description     flight-fare-sweeper
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
