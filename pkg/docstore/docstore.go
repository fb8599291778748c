// Package docstore wraps the auxiliary MongoDB deployment that mirrors the
// account collections.
package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Counter counts documents across a fixed set of collections.
type Counter struct {
	client      *mongo.Client
	database    string
	collections []string
}

// Connect opens the client once and verifies it with a ping.
func Connect(ctx context.Context, uri, database string, timeout time.Duration, collections ...string) (*Counter, error) {
	logger.Info("Connecting to document store", map[string]interface{}{
		"database":    database,
		"collections": collections,
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	logger.Info("Document store connection established", nil)
	return &Counter{client: client, database: database, collections: collections}, nil
}

// CountAll returns the sum of the document counts of every collection.
func (c *Counter) CountAll(ctx context.Context) (int64, error) {
	db := c.client.Database(c.database)

	var total int64
	for _, name := range c.collections {
		n, err := db.Collection(name).CountDocuments(ctx, bson.D{})
		if err != nil {
			logger.Error("Failed to count documents", err, map[string]interface{}{
				"collection": name,
			})
			return 0, fmt.Errorf("count %s: %w", name, err)
		}
		total += n
	}
	return total, nil
}

func (c *Counter) Close(ctx context.Context) error {
	logger.Info("Closing document store connection", nil)
	return c.client.Disconnect(ctx)
}
