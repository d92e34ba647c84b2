package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/giongion19/energyweb-marketplace/pkg/postgresql"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	Ledger     LedgerConfig      `envPrefix:"LEDGER_"`
	Postgres   postgresql.Config `envPrefix:"POSTGRES_"`
	MatchKafka MatchKafkaConfig  `envPrefix:"MATCH_KAFKA_"`
	Aggregator AggregatorConfig  `envPrefix:"AGGREGATOR_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"marketplace-aggregator"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// LedgerConfig holds the signing-bridge endpoint and the deployed contract
// addresses. Addresses are read once here and passed explicitly into the
// gateway constructor.
type LedgerConfig struct {
	BridgeURL               string        `env:"BRIDGE_URL" envDefault:"http://localhost:8545"`
	IdentityManagerAddress  string        `env:"IDENTITY_MANAGER_ADDRESS"`
	MarketplaceAddress      string        `env:"MARKETPLACE_ADDRESS"`
	RequestTimeout          time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ConfirmationPollBackoff time.Duration `env:"CONFIRMATION_POLL_BACKOFF" envDefault:"2s"`
}

// MatchKafkaConfig represents the Kafka configuration for match events.
type MatchKafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"marketplace-matches"`
}

// AggregatorConfig represents the matching loop configuration. The watchlists
// are the address-book values the aggregator scans, since the marketplace
// contract exposes no enumeration.
type AggregatorConfig struct {
	Address      string        `env:"ADDRESS"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`
	AssetList    []string      `env:"ASSET_LIST" envSeparator:","`
	BuyerList    []string      `env:"BUYER_LIST" envSeparator:","`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
