package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	AppEnv     string
	LogLevel   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	CarrierTablePath   string
	RequestBudget      time.Duration
	SplitPolicy        string
	LocationPreference string

	OtelExporterEndpoint string
	OtelExporterInsecure bool
}

// DSN renders the postgres connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// IsProduction selects JSON logs.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
