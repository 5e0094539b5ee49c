package mongo

import (
	"context"
	"time"

	"innkeep/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	pingTimeout = 5 * time.Second
)

type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects to the configured deployment, retrying like the relational
// connection does. It returns nil when every attempt fails.
func New(config *config.Config) *Connection {
	mongoConfig := config.DB.Mongo

	for retry := range max(mongoConfig.MaxRetry, 1) {
		client, err := mongo.Connect(options.Client().ApplyURI(mongoConfig.URI).SetAppName(config.App.Name))
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
			err = client.Ping(ctx, readpref.Primary())

			cancel()

			if err == nil {
				log.Info().
					Str("database", mongoConfig.Database).
					Msg("Connected to MongoDB")

				return &Connection{
					Client:   client,
					Database: client.Database(mongoConfig.Database),
				}
			}

			_ = client.Disconnect(context.Background())
		}

		log.
			Error().
			Err(err).
			Str("database", mongoConfig.Database).
			Int("attempt", retry+1).
			Msg("Failed connecting to MongoDB, retrying")

		time.Sleep(time.Duration(mongoConfig.RetryWaitTime) * time.Second)
	}

	return nil
}
