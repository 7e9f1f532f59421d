package config // package config loads application configuration from the environment

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
	DriverMySQL = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; only the fields of the selected store driver
// are required.
type Config struct {
	Env          string        `envconfig:"APP_ENV" default:"dev"`                    // application environment (dev/test/prod)
	StoreDriver  string        `envconfig:"STORE_DRIVER" default:"file"`              // snapshot backend: file, redis or mysql
	DataFile     string        `envconfig:"HOTEL_DATA_FILE" default:"hotelData.json"` // snapshot path for the file driver
	PaymentDelay time.Duration `envconfig:"PAYMENT_DELAY" default:"1s"`               // simulated payment latency

	RedisConfig
	DBConfig

	RabbitURL      string `envconfig:"RABBITMQ_URL"`                                // booking events broker; empty disables publishing
	AMQPURL        string `envconfig:"AMQP_URL"`                                    // fallback for RabbitURL
	BookingLogPath string `envconfig:"BOOKING_LOG_PATH" default:"logs/booking.log"` // file written by the booking-log consumer
}

// RedisConfig configures the redis store driver.  It is embedded in Config
// so envconfig reads the tags as-is instead of prefixing them.
type RedisConfig struct {
	Addr        string `envconfig:"REDIS_ADDR"`
	Host        string `envconfig:"REDIS_HOST"`
	Port        string `envconfig:"REDIS_PORT"`
	Password    string `envconfig:"REDIS_PASSWORD"`
	Index       int    `envconfig:"REDIS_DB" default:"0"`
	TLS         bool   `envconfig:"REDIS_TLS" default:"false"`
	SnapshotKey string `envconfig:"REDIS_SNAPSHOT_KEY" default:"hotel:snapshot"`
}

// DBConfig configures the mysql store driver.
type DBConfig struct {
	User         string `envconfig:"DB_USER"`
	Pass         string `envconfig:"DB_PASS"`
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"3306"`
	Name         string `envconfig:"DB_NAME"`
	SnapshotName string `envconfig:"DB_SNAPSHOT_NAME" default:"default"`
}

// Load reads an optional .env file and then the environment.  Variables
// already set in the environment win over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !isNotExist(err) {
		log.Printf("config: .env ignored: %v", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the fields needed by the selected driver are set.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile:
		if c.DataFile == "" {
			return errors.New("HOTEL_DATA_FILE must not be empty")
		}
	case DriverRedis:
	case DriverMySQL:
		var missing []string
		if c.DBConfig.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.DBConfig.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("mysql store requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want file, redis or mysql)", c.StoreDriver)
	}
	if c.PaymentDelay < 0 {
		return fmt.Errorf("PAYMENT_DELAY must not be negative, got %s", c.PaymentDelay)
	}
	return nil
}

// BrokerURL returns the configured RabbitMQ URL, or "" when events are
// disabled.
func (c Config) BrokerURL() string {
	if c.RabbitURL != "" {
		return c.RabbitURL
	}
	return c.AMQPURL
}
