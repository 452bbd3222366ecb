package main

import (
	"log"

	"github.com/gardenstock/stockwatch/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ stockwatch failed to start: %v", err)
	}
}
