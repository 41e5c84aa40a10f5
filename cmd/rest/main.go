package main

import (
	"context"
	"log"

	"ai-chat-demo-be/internal/bootstrap"
	"ai-chat-demo-be/internal/config"
	"ai-chat-demo-be/internal/server"
	"ai-chat-demo-be/internal/tracer"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
