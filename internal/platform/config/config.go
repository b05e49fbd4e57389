package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	strutil "punchclock/pkg/platform/strings"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Server   Server
	Auth     Auth
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Kiosk    Kiosk
	Log      Log
}

// Server captures HTTP server level configuration. Zero timeouts leave the
// httpserver defaults in place.
type Server struct {
	Addr              string
	ShutdownTimeout   time.Duration
	DefaultTimezone   string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// Auth configures session token verification. Tokens are issued elsewhere.
type Auth struct {
	JWTSigningKey string
	JWTIssuer     string
}

// Database configures Postgres. An empty URL selects in-memory stores.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	TxTimeout       time.Duration
	RunMigrations   bool
}

// RedisConfig configures the shared kiosk device-lock cache.
// An empty URL keeps device locks in process memory.
type RedisConfig struct {
	URL          string
	KeyPrefix    string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the audit outbox relay. No brokers disables the relay.
type Kafka struct {
	Brokers       []string
	AuditTopic    string
	RelayInterval time.Duration
	RelayBatch    int
}

// Kiosk holds the device lockout thresholds.
type Kiosk struct {
	DeviceMaxAttempts int
	DeviceLockFor     time.Duration
	DeviceStateTTL    time.Duration
	// ConstantTimePINScan compares the PIN against every roster hash even
	// after a match.
	ConstantTimePINScan bool
}

type Log struct {
	Level  string
	Format string
}

// DefaultKiosk returns the lockout thresholds used when nothing is configured.
func DefaultKiosk() Kiosk {
	return Kiosk{
		DeviceMaxAttempts: 5,
		DeviceLockFor:     120 * time.Second,
		DeviceStateTTL:    15 * time.Minute,
	}
}

// FromEnv builds a Config from environment variables, loading a .env file
// first when one is present.
func FromEnv() Config {
	_ = godotenv.Load()

	kiosk := DefaultKiosk()
	return Config{
		Server: Server{
			Addr:              getenv("PUNCHCLOCK_ADDR", ":8080"),
			ShutdownTimeout:   getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			DefaultTimezone:   getenv("DEFAULT_TIMEZONE", "America/Sao_Paulo"),
			ReadHeaderTimeout: getenvDuration("HTTP_READ_HEADER_TIMEOUT", 0),
			ReadTimeout:       getenvDuration("HTTP_READ_TIMEOUT", 0),
			WriteTimeout:      getenvDuration("HTTP_WRITE_TIMEOUT", 0),
			IdleTimeout:       getenvDuration("HTTP_IDLE_TIMEOUT", 0),
		},
		Auth: Auth{
			// Use a default for development - should be overridden in production
			JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     os.Getenv("JWT_ISSUER"),
		},
		Database: Database{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			TxTimeout:       getenvDuration("DB_TX_TIMEOUT", 5*time.Second),
			RunMigrations:   getenv("DB_RUN_MIGRATIONS", "true") == "true",
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			KeyPrefix:    getenv("REDIS_KEY_PREFIX", "punchclock:"),
			PoolSize:     getenvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getenvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getenvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getenvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:       strutil.SplitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:    getenv("KAFKA_AUDIT_TOPIC", "punchclock.audit"),
			RelayInterval: getenvDuration("AUDIT_RELAY_INTERVAL", time.Second),
			RelayBatch:    getenvInt("AUDIT_RELAY_BATCH", 100),
		},
		Kiosk: Kiosk{
			DeviceMaxAttempts:   getenvInt("KIOSK_DEVICE_MAX_ATTEMPTS", kiosk.DeviceMaxAttempts),
			DeviceLockFor:       getenvDuration("KIOSK_DEVICE_LOCK", kiosk.DeviceLockFor),
			DeviceStateTTL:      getenvDuration("KIOSK_DEVICE_STATE_TTL", kiosk.DeviceStateTTL),
			ConstantTimePINScan: os.Getenv("KIOSK_CONSTANT_TIME_PIN_SCAN") == "true",
		},
		Log: Log{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
