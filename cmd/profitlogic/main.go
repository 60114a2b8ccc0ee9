package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"profitlogic/internal/config"
	"profitlogic/internal/server"
)

var (
	port    = flag.Int("port", 0, "listen port (config.toml wins when it sets port)")
	devMode = flag.Bool("dev", false, "development mode")
	vinMode = flag.String("vin", "", "VIN decoder: static or vpic (overrides config)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Profit Logic - dealer appraisal calculator")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// command line overrides
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *vinMode != "" {
		cfg.VIN.Mode = *vinMode
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("%v", err)
	}

	srv := server.NewServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("listening on http://localhost:%d (vin decoder: %s)\n", cfg.Server.Port, cfg.VIN.Mode)
	fmt.Println("\npress Ctrl+C to stop...")

	if err := srv.Run(ctx, addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
	fmt.Println("\nserver stopped")
}
