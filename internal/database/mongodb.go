package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/railpick/railpick/backend/dashboard-service/internal/credentials"
)

// ConnectMongo opens a connection using the resolved service-account key and
// returns the client. Caller should call client.Disconnect(ctx).
// uriOverride takes precedence over the URI carried in the key (useful for
// local development against a different endpoint).
func ConnectMongo(ctx context.Context, sa *credentials.ServiceAccount, uriOverride string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	uri := sa.URI
	if uriOverride != "" {
		uri = uriOverride
	}
	clientOpts := options.Client().ApplyURI(uri)
	if sa.Username != "" {
		clientOpts.SetAuth(options.Credential{
			Username: sa.Username,
			Password: sa.Password,
		})
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
