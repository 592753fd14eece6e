package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	dotenv "github.com/joho/godotenv"
)

func main() {
	_ = dotenv.Load()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}
