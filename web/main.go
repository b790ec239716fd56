package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/JMS55/raytracing-in-one-weekend/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .json scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default&width=400&height=200&samples=20", *port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
