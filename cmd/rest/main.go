package main

import (
	"context"
	"log"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/bootstrap"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/config"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/server"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/tracer"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
