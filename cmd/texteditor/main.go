package main

import (
	"context"
	"log"

	"texteditor/internal/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := app.LoadConfig()
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}
