package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string

	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	DBSQLitePath string

	LogLevel  string
	LogFormat string

	NodeID int64

	KafkaBrokers       []string
	KafkaShipmentTopic string

	AutoInvoiceOnDelivery bool
	OverdueSweepSchedule  string
	OverdueSweepBatchSize int
	SystemActorID         int64
	SeedPricingRules      bool
}

func defaults() map[string]any {
	return map[string]any{
		"HTTP_PORT":                "8080",
		"DB_DRIVER":                DriverPostgres,
		"DB_HOST":                  "localhost",
		"DB_PORT":                  "5432",
		"DB_USER":                  "freight",
		"DB_PASSWORD":              "freight",
		"DB_NAME":                  "freight",
		"DB_SSLMODE":               "disable",
		"DB_SQLITE_PATH":           "freight.db",
		"LOG_LEVEL":                "info",
		"LOG_FORMAT":               "json",
		"NODE_ID":                  1,
		"KAFKA_BROKERS":            "",
		"KAFKA_SHIPMENT_TOPIC":     "freight.shipment.events",
		"AUTO_INVOICE_ON_DELIVERY": false,
		"OVERDUE_SWEEP_SCHEDULE":   "0 0 * * * *",
		"OVERDUE_SWEEP_BATCH_SIZE": 100,
		"SYSTEM_ACTOR_ID":          1,
		"SEED_PRICING_RULES":       true,
	}
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file. An empty
// variable counts as set, which is how OVERDUE_SWEEP_SCHEDULE disables the sweep.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBDriver:              strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		DBSQLitePath:          v.GetString("DB_SQLITE_PATH"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		LogFormat:             v.GetString("LOG_FORMAT"),
		NodeID:                v.GetInt64("NODE_ID"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaShipmentTopic:    v.GetString("KAFKA_SHIPMENT_TOPIC"),
		AutoInvoiceOnDelivery: v.GetBool("AUTO_INVOICE_ON_DELIVERY"),
		OverdueSweepSchedule:  strings.TrimSpace(v.GetString("OVERDUE_SWEEP_SCHEDULE")),
		OverdueSweepBatchSize: v.GetInt("OVERDUE_SWEEP_BATCH_SIZE"),
		SystemActorID:         v.GetInt64("SYSTEM_ACTOR_ID"),
		SeedPricingRules:      v.GetBool("SEED_PRICING_RULES"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverSQLite {
		problems = append(problems, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver))
	}
	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.SystemActorID <= 0 {
		problems = append(problems, fmt.Errorf("SYSTEM_ACTOR_ID must be positive, got %d", c.SystemActorID))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaShipmentTopic == "" {
		problems = append(problems, errors.New("KAFKA_SHIPMENT_TOPIC is required when KAFKA_BROKERS is set"))
	}
	return errors.Join(problems...)
}

// PostgresDSN is the connection string for gorm.io/driver/postgres.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
