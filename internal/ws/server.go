package ws

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"typedsign/internal/manager"

	_ "github.com/joho/godotenv/autoload"
)

type WSServer struct {
	port    int
	manager *manager.Manager
	logger  *log.Logger
}

func NewWSServer(manager *manager.Manager, logger *log.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	NewWSServer := &WSServer{
		port:    port,
		manager: manager,
		logger:  logger,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewWSServer.port),
		Handler:      NewWSServer.Serve(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
