package main

import (
	"adventcal/internal/config"
	"adventcal/internal/gateway"
	"adventcal/internal/repository"
	"context"
	"flag"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// replay re-sends journaled analytics events that never reached GameLayer.
func main() {
	limit := flag.Int("limit", 100, "maximum number of events to replay")
	dryRun := flag.Bool("dry-run", false, "list pending events without sending them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.IsMockMode() && !*dryRun {
		log.Fatal("GAMELAYER_API_KEY is required to replay events")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	events := repository.NewEventRepo(client.Database(cfg.MongoDB))
	pending, err := events.ListUndelivered(ctx, *limit)
	if err != nil {
		log.Fatalf("Failed to list undelivered events: %v", err)
	}
	log.Printf("%d undelivered events", len(pending))
	if *dryRun {
		for _, e := range pending {
			log.Printf("  %s %s player=%s at %s", e.ID, e.Name, e.PlayerID, e.Timestamp.Format(time.RFC3339))
		}
		return
	}

	year := cfg.GameLayer.EventYear
	if year == 0 {
		year = time.Now().Year()
	}
	gw := gateway.NewHTTPGateway(gateway.HTTPConfig{
		BaseURL:    cfg.GameLayer.BaseURL,
		APIKey:     cfg.GameLayer.APIKey,
		GameID:     cfg.GameLayer.GameID,
		ClientID:   cfg.GameLayer.ClientID,
		Account:    cfg.GameLayer.Account,
		EventYear:  year,
		EventMonth: cfg.GameLayer.EventMonth,
		Timeout:    cfg.GameLayer.Timeout,
		MaxRetries: cfg.GameLayer.MaxRetries,
		RPS:        cfg.GameLayer.RPS,
		Burst:      cfg.GameLayer.Burst,
	})

	sent := 0
	for _, e := range pending {
		if err := gw.TrackEvent(ctx, e.Name, e.Data); err != nil {
			log.Printf("[replay] %s (%s) failed: %v", e.ID, e.Name, err)
			continue
		}
		if err := events.MarkDelivered(ctx, e.ID); err != nil {
			log.Printf("[replay] %s sent but not marked: %v", e.ID, err)
			continue
		}
		sent++
	}
	log.Printf("Replayed %d/%d events", sent, len(pending))
}
