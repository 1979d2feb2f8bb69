package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"rate_planner/internal/cache"
	"rate_planner/internal/config"
	"rate_planner/internal/model"
	"rate_planner/internal/ws"
)

func main() {
	defaultsPath := flag.String("defaults", "", "YAML defaults file (optional; built-in defaults otherwise)")
	frontendDir := flag.String("frontend-dir", "frontend/build", "directory containing frontend build")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	params := model.DefaultParams()
	years := model.DefaultYearRange
	if *defaultsPath != "" {
		var err error
		params, years, err = config.Load(*defaultsPath)
		if err != nil {
			log.Fatalf("Failed to load defaults: %v", err)
		}
		log.Printf("Defaults loaded from %s", *defaultsPath)
	}
	log.Printf("Projection horizon: %d to %d", years.Start, years.End)

	hub := ws.NewHub()
	handler := ws.NewHandler(hub, cache.New(), params, years)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	// Serve frontend static files
	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		mux.Handle("/", http.FileServer(http.Dir(*frontendDir)))
	}

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
