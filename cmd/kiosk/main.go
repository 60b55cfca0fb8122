package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/foodorder/config"
	"github.com/Gunvolt24/foodorder/internal/app"
	"github.com/joho/godotenv"
)

// Киоск: страницы клиента поверх профиля и удалённого API.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kiosk, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := kiosk.Run(ctx); err != nil {
		kiosk.Logger.Errorf(ctx, "kiosk stopped with error: %v", err)
		cleanup()
		os.Exit(1)
	}
}
