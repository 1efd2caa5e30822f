package main

import (
	"log"
	"net/http"
	"os"

	"notedeck/config/database"
	"notedeck/pkg/logger"
	"notedeck/router"
	"notedeck/socket"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	logger.Init()
	defer logger.Log.Sync()

	db := database.Connect()
	defer db.Close()

	hub := socket.NewHub()
	go hub.Run()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Sugar.Infof("notedeck listening on %s", addr)
	if err := http.ListenAndServe(addr, router.Setup(db, hub)); err != nil {
		logger.Sugar.Fatalf("Server failed: %v", err)
	}
}
