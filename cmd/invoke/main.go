// Command invoke serves one function-style event: it reads a JSON envelope
// from stdin, routes it to the endpoint named by -endpoint and writes the
// JSON result to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/pr-poehali-dev/ai-programmer-disol/config"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/bootstrap"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/transport/envelope"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/database"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	endpoint := flag.String("endpoint", "/chat", "Endpoint path: /chat, /generate or /projects")
	flag.Parse()

	cfg := config.LoadConfig()
	// stdout carries the result, so logs go to stderr or the log file only.
	gin.DefaultWriter = os.Stderr
	l := logger.NewWithOptions(logger.Options{Mode: cfg.AppMode, FilePath: cfg.LogFilePath})
	defer l.Sync()

	var req envelope.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Fatalf("Failed to decode event: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()
	container := bootstrap.NewContainer(ctx, db, cfg, l)

	resp, err := envelope.Invoke(ctx, container.Server.Engine(), *endpoint, req)
	if err != nil {
		log.Fatalf("Failed to invoke %s: %v", *endpoint, err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
