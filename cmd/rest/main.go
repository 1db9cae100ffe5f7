package main

import (
	"context"
	"log"

	"bookgpt-be/internal/bootstrap"
	"bookgpt-be/internal/config"
	"bookgpt-be/internal/server"
	"bookgpt-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	if container.AnalyticsService != nil {
		go func() {
			log.Println("Background: Starting Analytics Consumer...")
			if err := container.AnalyticsService.Consume(context.Background()); err != nil {
				log.Printf("Background Analytics Consumer Error: %v", err)
			}
		}()
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
