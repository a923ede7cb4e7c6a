// Package backend selects and wires the persistence backend the store
// runs on, based on configuration.
package backend

import (
	"fmt"

	"famfin/internal/config"
	"famfin/internal/finance"
)

// Type names a persistence backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what backend creation needs, decoupled from the full app
// config.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Sync publishing (optional, both backends)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:         t,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Validate checks the configuration for the selected backend type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result holds the created repository and its cleanup function.
type Result struct {
	Repo    finance.Repository
	Cleanup CleanupFunc
}

// Factory creates repositories based on configuration.
type Factory interface {
	CreateBackend(config Config) (*Result, error)
}
