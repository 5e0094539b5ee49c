package postgres

import (
	"net"
	"net/url"
	"time"

	"innkeep/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" //nolint:revive
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads from writes. Row locks and every write go through
// Write; listings and lookups outside a transaction use Read.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one side of the read/write pair.
type Endpoint struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Timezone string
}

// DSN renders the endpoint as a postgres URL. Credentials are escaped, and
// extra params are appended after the connection settings.
func (e Endpoint) DSN(extra url.Values) string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	read := cfg.DB.Postgres.Read

	return Endpoint{
		Role:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Database: cfg.DB.Postgres.Prefix + read.Name,
		SSLMode:  read.SSLMode,
		Timezone: read.Timezone,
	}
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	write := cfg.DB.Postgres.Write

	return Endpoint{
		Role:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Database: cfg.DB.Postgres.Prefix + write.Name,
		SSLMode:  write.SSLMode,
		Timezone: write.Timezone,
	}
}

func New(cfg *config.Config) *Connection {
	retries := cfg.DB.Postgres.MaxRetry
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	return &Connection{
		Read:  Connect(ReadEndpoint(cfg), retries, wait),
		Write: Connect(WriteEndpoint(cfg), retries, wait),
	}
}

// Connect dials the endpoint until it answers or the retries run out, in
// which case it returns nil.
func Connect(endpoint Endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		db, err := sqlx.Connect("postgres", endpoint.DSN(nil))
		if err == nil {
			log.
				Info().
				Str("role", endpoint.Role).
				Str("host", endpoint.Host).
				Str("database", endpoint.Database).
				Msg("Connected to database")

			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			return db
		}

		log.
			Error().
			Err(err).
			Str("role", endpoint.Role).
			Str("host", endpoint.Host).
			Str("database", endpoint.Database).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	return nil
}
