package api

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

type APIServer struct {
	port    int
	manager *manager.Manager
	logger  *log.Logger
}

func NewAPIServer(manager *manager.Manager, logger *log.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("API_PORT"))

	NewAPIServer := &APIServer{
		port:    port,
		manager: manager,
		logger:  logger,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewAPIServer.port),
		Handler:      NewAPIServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
