package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hypermesh/internal/config"
	"hypermesh/internal/domain"
	"hypermesh/internal/loader"
	"hypermesh/internal/repository/sqlite"
	"hypermesh/internal/service"
	"hypermesh/internal/watcher"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	metadataPath := flag.String("metadata", "", "node metadata YAML file (overrides config)")
	dimension := flag.Int("dimension", 0, "hypercube dimension (overrides config)")
	source := flag.Int("source", 0, "propagation source address")
	pattern := flag.String("pattern", "", "heartbeat pattern (overrides config)")
	deactivate := flag.String("deactivate", "", "deactivate nodes with this category before computing metrics")
	exportFormat := flag.String("export", "", "export topology snapshot after the run (json or yaml)")
	watch := flag.Bool("watch", false, "watch the metadata file and rebuild on change")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting hypermesh...")

	// Load configuration
	var cfg *config.Config
	var path string
	var err error
	if *configPath != "" {
		cfg, path, err = config.LoadFromPath(*configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if path != "" {
		log.Printf("Config loaded from %s", path)
	}
	if *dimension > 0 {
		cfg.Mesh.Dimension = *dimension
	}
	if *metadataPath != "" {
		cfg.Metadata.Path = *metadataPath
	}
	if *pattern != "" {
		cfg.Heartbeat.Pattern = *pattern
	}
	log.Println(cfg.Summary())

	// Initialize SQLite repository
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// Initialize event bus with a logging subscriber
	eventBus := service.NewEventBus()
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			log.Printf("Event: %s %v", event.Type, event.Payload)
		}
	}()

	mesh := service.NewMeshService(repo, eventBus)

	ctx := context.Background()

	rebuild := func() error {
		var metadata []domain.NodeMetadata
		if cfg.Metadata.Path != "" {
			records, err := loader.LoadYAML(cfg.Metadata.Path)
			if err != nil {
				return fmt.Errorf("load metadata: %w", err)
			}
			metadata = records
			log.Printf("Loaded %d metadata records from %s", len(metadata), cfg.Metadata.Path)
		}
		return mesh.BuildTopology(ctx, cfg.Mesh.Dimension, metadata)
	}

	run := func() {
		result, err := mesh.Propagate(ctx, *source, true)
		if err != nil {
			log.Printf("Propagation failed: %v", err)
			return
		}
		log.Printf("Propagation from %d visited %d nodes", result.SourceAddress, len(result.Visited))

		synced, err := mesh.SynchronizeHeartbeat(ctx, cfg.Heartbeat.Pattern)
		if err != nil {
			log.Printf("Heartbeat sync failed: %v", err)
			return
		}
		log.Printf("Heartbeat %q synchronized to %d nodes", cfg.Heartbeat.Pattern, synced)

		if *deactivate != "" {
			count, err := mesh.DeactivateNodes(ctx, domain.CategoryIs(*deactivate))
			if err != nil {
				log.Printf("Deactivation failed: %v", err)
				return
			}
			log.Printf("Deactivated %d nodes with category %q", count, *deactivate)
		}

		metrics, err := mesh.ComputeMetrics(ctx)
		if err != nil {
			log.Printf("Metrics computation failed: %v", err)
			return
		}
		printMetrics(metrics)

		if err := mesh.SaveState(ctx); err != nil {
			log.Printf("Failed to save node states: %v", err)
		}
	}

	if err := rebuild(); err != nil {
		log.Fatalf("Failed to build topology: %v", err)
	}
	run()

	switch *exportFormat {
	case "":
	case "json":
		data, err := mesh.ExportJSON(ctx)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		os.Stdout.Write(data)
	case "yaml":
		if err := mesh.ExportYAML(ctx, os.Stdout); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
	default:
		log.Fatalf("Unknown export format %q", *exportFormat)
	}

	if !*watch {
		return
	}

	if cfg.Metadata.Path == "" {
		log.Fatal("-watch requires a metadata file")
	}

	// Watch the metadata file and rerun on change
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := watcher.New(cfg.Metadata.Path, func() {
		if err := rebuild(); err != nil {
			log.Printf("Rebuild failed: %v", err)
			return
		}
		run()
	}).WithDebounce(cfg.Metadata.WatchDebounce.Duration())

	go func() {
		if err := w.Watch(watchCtx); err != nil && err != context.Canceled {
			log.Printf("Watcher stopped: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
}

func printMetrics(m domain.NetworkMetrics) {
	log.Printf("Metrics: nodes=%d active=%d edges=%d repos=%d users=%d",
		m.NodeCount, m.ActiveNodeCount, m.EdgeCount, m.TotalRepositories, m.TotalUsers)
	log.Printf("         density=%.4f propagation=%.4f heartbeat_sync=%.4f",
		m.NetworkDensity, m.PropagationEfficiency, m.HeartbeatSyncRatio)
}
