package main

import (
	"fmt"
	"os"

	"taskm/internal/config"
	"taskm/internal/storage"
	"taskm/internal/task"
	"taskm/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	gateway, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer gateway.Close()

	tasks, prefs := gateway.Load()
	store := task.NewStore(tasks, prefs, gateway)

	if err := ui.Run(store, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
