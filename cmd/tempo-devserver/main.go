package main

import (
	"log"
	"os"

	"github.com/existflow/tempo/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	seed := os.Getenv("TEMPO_SEED") != "false"

	srv := server.New(seed)

	log.Printf("Tempo devserver starting on :%s (seed=%v)", port, seed)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
