package main

import (
	httpapi "ludo/internal/api/http"
	"ludo/internal/api/ws"
	"ludo/internal/config"
	"ludo/internal/room"
	"ludo/internal/store"
	"log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, nil)
	hub := ws.NewHub(rm)
	rm.SetHub(hub)
	r := httpapi.SetupRouter(rm, mem, hub, cfg)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
