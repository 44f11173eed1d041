package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App names one of the three servers built from this module.
type App string

const (
	Todo     App = "todo"
	Expenses App = "expenses"
	Booking  App = "booking"
)

type defaults struct {
	port   int
	dbPath string
}

var appDefaults = map[App]defaults{
	Todo:     {port: 8000},
	Expenses: {port: 8001, dbPath: "expenses.db"},
	Booking:  {port: 8002, dbPath: "booking.db"},
}

// Config holds the runtime settings of one app.
type Config struct {
	App  App
	Host string
	Port int

	// DBPath is empty for the todo app, which keeps everything in memory.
	DBPath string
	Seed   bool

	LogLevel  string
	LogFormat string
	GinMode   string

	// AMQPURL enables RabbitMQ booking notifications when set.
	AMQPURL string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads an optional .env file and then the environment, falling back to
// the app's defaults.
func Load(app App) (Config, error) {
	def, ok := appDefaults[app]
	if !ok {
		return Config{}, fmt.Errorf("unknown app %q", app)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	port, err := strconv.Atoi(getenv("PORT", strconv.Itoa(def.port)))
	if err != nil || port < 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	cfg := Config{
		App:             app,
		Host:            getenv("HOST", "0.0.0.0"),
		Port:            port,
		DBPath:          def.dbPath,
		Seed:            parseBool(getenv("SEED_SAMPLE_DATA", "true")),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
		GinMode:         getenv("GIN_MODE", "release"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		ReadTimeout:     parseDur(getenv("READ_TIMEOUT", "10s"), 10*time.Second),
		WriteTimeout:    parseDur(getenv("WRITE_TIMEOUT", "10s"), 10*time.Second),
		ShutdownTimeout: parseDur(getenv("SHUTDOWN_TIMEOUT", "5s"), 5*time.Second),
	}
	if app != Todo {
		cfg.DBPath = getenv("DB_PATH", def.dbPath)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
