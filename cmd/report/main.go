// Command report computes one aggregate bundle and writes it to stdout as
// JSON. Useful for cron snapshots or debugging without the web dashboard.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/railpick/railpick/backend/dashboard-service/internal/analytics"
	"github.com/railpick/railpick/backend/dashboard-service/internal/config"
	"github.com/railpick/railpick/backend/dashboard-service/internal/credentials"
	"github.com/railpick/railpick/backend/dashboard-service/internal/database"
	"github.com/railpick/railpick/backend/dashboard-service/internal/devicenames"
	"github.com/railpick/railpick/backend/dashboard-service/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	chain := credentials.NewChain(
		credentials.SecretProvider{JSON: cfg.Credentials.SecretJSON},
		credentials.FileProvider{Dirs: cfg.Credentials.SearchDirs, Pattern: cfg.Credentials.FilePattern},
	)
	sa, err := chain.Resolve(ctx)
	if err != nil {
		log.Fatalf("resolve credentials: %v", err)
	}

	client, err := database.ConnectMongo(ctx, sa, cfg.Store.URI, cfg.Store.Timeout)
	if err != nil {
		log.Fatalf("connect store: %v", err)
	}
	defer client.Disconnect(ctx)

	dbName := cfg.Store.Database
	if sa.Database != "" {
		dbName = sa.Database
	}
	reader := store.NewMongoReader(client.Database(dbName))

	names, err := devicenames.Load()
	if err != nil {
		log.Fatalf("load device model table: %v", err)
	}
	svc := analytics.NewService(reader, names, analytics.Options{
		AdminEmails: cfg.Dashboard.AdminEmails,
		TopModels:   cfg.Dashboard.TopModels,
		TopRoutes:   cfg.Dashboard.TopRoutes,
	})

	bundle, err := svc.ComputeAggregates(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("compute aggregates: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		log.Fatalf("encode bundle: %v", err)
	}
}
