package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"provchain/api"
	"provchain/ledger"
	"provchain/ledger/store"
)

func main() {
	file := flag.String("file", "1.blockchain", "ledger file to serve")
	port := flag.String("port", "8372", "HTTP API port")
	flag.Parse()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	// 1. Load the ledger, bootstrapping a fresh one if the file is missing
	l, err := ledger.Load(*file, true)
	if err != nil {
		slog.Error("failed to load ledger", "file", *file, "err", err)
		os.Exit(1)
	}
	slog.Info("ledger loaded", "file", *file, "blocks", l.Length())

	// 2. Guard it for concurrent readers
	ledgerStore := store.NewGuardedStore(l)

	// 3. Serve the read-only API
	server := api.NewServer(ledgerStore, *port)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("HTTP server stopped", "err", err)
			os.Exit(1)
		}
	}()

	// 4. Save on shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := ledgerStore.Save(*file); err != nil {
		slog.Error("failed to save ledger on shutdown", "file", *file, "err", err)
		os.Exit(1)
	}
	slog.Info("ledger saved", "file", *file)
}
