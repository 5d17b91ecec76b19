// Package redis provides Redis client utilities.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	redigo "github.com/gomodule/redigo/redis"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/todo-tracker/internal/config"
)

const (
	dialTimeout     = 5 * time.Second
	sessionPoolSize = 10
)

// NewClient creates a Redis client and checks the connection.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	options := &redis.Options{
		Addr:     Addr(cfg),
		Password: cfg.RedisPassword,
		DB:       0,
	}

	if useTLS(cfg) {
		options.TLSConfig = tlsConfig()
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewSessionPool creates the redigo pool behind the session store. It dials
// with the same password and TLS settings as NewClient.
func NewSessionPool(cfg *config.Config) *redigo.Pool {
	return &redigo.Pool{
		MaxIdle:     sessionPoolSize,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", Addr(cfg), dialOptions(cfg)...)
		},
		TestOnBorrow: func(c redigo.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func dialOptions(cfg *config.Config) []redigo.DialOption {
	options := []redigo.DialOption{
		redigo.DialConnectTimeout(dialTimeout),
		redigo.DialPassword(cfg.RedisPassword),
	}
	if useTLS(cfg) {
		options = append(options,
			redigo.DialUseTLS(true),
			redigo.DialTLSConfig(tlsConfig()),
		)
	}
	return options
}

// useTLS enables TLS for production environments when a password is set.
func useTLS(cfg *config.Config) bool {
	return cfg.RedisPassword != "" && cfg.IsProduction()
}

func tlsConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}

// Addr returns the host:port of the configured Redis server.
func Addr(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
}
