package redis

import (
	"context"
	"net"
	"time"

	"innkeep/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pingTimeout  = 3 * time.Second
	pingAttempts = 3
)

// New connects to the primary redis used for the pricing cache and the rate
// limiter. Startup fails when it cannot be reached.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:       net.JoinHostPort(primary.Host, primary.Port),
		Password:   primary.Password,
		DB:         primary.DB,
		ClientName: config.App.Name,
	})

	var err error

	for attempt := range pingAttempts {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = client.Ping(ctx).Err()

		cancel()

		if err == nil {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt+1).Msg("Redis not reachable yet, retrying")
		time.Sleep(time.Second)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
