package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DoodleBoard/internal/config"
	dnet "DoodleBoard/internal/net"
	"DoodleBoard/internal/ui"
	"DoodleBoard/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	addr := flag.String("addr", "", "Listen address for serve (overrides config and "+config.AddrEnv+")")
	advertise := flag.Bool("advertise", false, "Announce the server on the local network via mDNS")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `DoodleBoard - freehand and oval drawing overlay

Usage:
  doodleboard [options]            open the desktop overlay
  doodleboard [options] serve      serve the overlay to browsers
  doodleboard discover             list servers on the local network

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *advertise {
		cfg.Advertise = true
	}

	switch flag.Arg(0) {
	case "", "desktop":
		log.Println("Starting desktop overlay")
		ui.RunApp(cfg)
	case "serve":
		runServer(cfg)
	case "discover":
		runDiscover()
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runServer(cfg config.Config) {
	listener, port, err := dnet.Listen(cfg.Addr)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	if cfg.Advertise {
		server, err := dnet.Advertise(port)
		if err != nil {
			log.Printf("[MDNS] Advertising disabled: %v", err)
		} else {
			defer server.Shutdown()
			log.Printf("[MDNS] Advertising %s on port %d", dnet.ServiceType, port)
		}
	}

	log.Printf("[WEB] Open %s to draw", dnet.ShareLink(port))
	srv := web.NewServer(cfg)
	go func() {
		if err := srv.Serve(listener); err != nil {
			log.Fatalf("%v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[WEB] %v", err)
	}
}

func runDiscover() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	found := 0
	err := dnet.Browse(ctx, 3*time.Second, func(addr string) {
		found++
		fmt.Printf("http://%s/\n", addr)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[MDNS] Browse failed: %v", err)
	}
	if found == 0 {
		log.Println("[MDNS] No overlay servers found")
	}
}
