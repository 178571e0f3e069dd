package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"typedsign/internal/api"
	"typedsign/internal/manager"
	"typedsign/internal/ws"
)

// runServer starts the server and blocks until the process receives an
// interrupt, then shuts the server down with a 5 second grace period.
func runServer(server *http.Server, done chan bool, logger *log.Logger) {
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error on %s: %v", server.Addr, err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Println("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("Server forced to shutdown with error: %v", err)
	}

	done <- true
}

func main() {
	logger := log.New(os.Stdout, "typedsign: ", log.LstdFlags)

	manager := manager.NewManager(logger)

	apiServer := api.NewAPIServer(manager, logger)
	wsServer := ws.NewWSServer(manager, logger)

	apiDone := make(chan bool, 1)
	wsDone := make(chan bool, 1)

	go runServer(apiServer, apiDone, logger)
	go runServer(wsServer, wsDone, logger)

	<-apiDone
	<-wsDone
	logger.Println("Servers down, now closing the manager...")
	manager.Close()

	logger.Println("Graceful shutdown complete.")
}
