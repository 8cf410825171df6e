package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Pebble   PebbleConfig   `mapstructure:"pebble"`
	Lock     LockConfig     `mapstructure:"lock"`
	Closer   CloserConfig   `mapstructure:"closer"`
	Leader   LeaderConfig   `mapstructure:"leader"`
	Instance InstanceConfig `mapstructure:"instance"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Encoding   string `mapstructure:"encoding"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// StoreConfig selects the persistence adapter: memory, mysql, sqlite or pebble.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MySQLConfig struct {
	// DSN should carry parseTime=true and clientFoundRows=true so UPDATEs
	// report matched rows rather than changed rows.
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PebbleConfig struct {
	Dir string `mapstructure:"dir"`
}

// LockConfig selects the per-listing locker: local or redis.
type LockConfig struct {
	Driver     string        `mapstructure:"driver"`
	TTL        time.Duration `mapstructure:"ttl"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type CloserConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

type LeaderConfig struct {
	Key string        `mapstructure:"key"`
	TTL time.Duration `mapstructure:"ttl"`
}

type InstanceConfig struct {
	ID string `mapstructure:"id"`
}

var (
	storeDrivers = map[string]bool{"memory": true, "mysql": true, "sqlite": true, "pebble": true}
	lockDrivers  = map[string]bool{"local": true, "redis": true}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("mysql.dsn", "auction_user:auction_pass@tcp(localhost:3306)/auction_db?parseTime=true&clientFoundRows=true")
	v.SetDefault("mysql.max_open_conns", 25)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("mysql.migrate", true)
	v.SetDefault("sqlite.path", "auction-ledger.db")
	v.SetDefault("pebble.dir", "data/pebble")
	v.SetDefault("lock.driver", "local")
	v.SetDefault("lock.ttl", 5*time.Second)
	v.SetDefault("lock.retry_delay", 20*time.Millisecond)
	v.SetDefault("closer.enabled", true)
	v.SetDefault("closer.spec", "@every 10s")
	v.SetDefault("leader.key", "auction_ledger_leader")
	v.SetDefault("leader.ttl", 30*time.Second)
	v.SetDefault("instance.id", "ledger-service-1")
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()

	bindings := map[string]string{
		"server.port":             "SERVER_PORT",
		"server.host":             "SERVER_HOST",
		"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
		"log.level":               "LOG_LEVEL",
		"log.encoding":            "LOG_ENCODING",
		"log.file":                "LOG_FILE",
		"store.driver":            "STORE_DRIVER",
		"redis.enabled":           "REDIS_ENABLED",
		"redis.address":           "REDIS_ADDRESS",
		"redis.password":          "REDIS_PASSWORD",
		"redis.db":                "REDIS_DB",
		"mysql.dsn":               "MYSQL_DSN",
		"mysql.max_open_conns":    "MYSQL_MAX_OPEN_CONNS",
		"mysql.max_idle_conns":    "MYSQL_MAX_IDLE_CONNS",
		"mysql.conn_max_lifetime": "MYSQL_CONN_MAX_LIFETIME",
		"mysql.migrate":           "MYSQL_MIGRATE",
		"sqlite.path":             "SQLITE_PATH",
		"pebble.dir":              "PEBBLE_DIR",
		"lock.driver":             "LOCK_DRIVER",
		"lock.ttl":                "LOCK_TTL",
		"lock.retry_delay":        "LOCK_RETRY_DELAY",
		"closer.enabled":          "CLOSER_ENABLED",
		"closer.spec":             "CLOSER_SPEC",
		"leader.key":              "LEADER_KEY",
		"leader.ttl":              "LEADER_TTL",
		"instance.id":             "INSTANCE_ID",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}

// Load reads an optional .env file, then defaults, an optional config.yaml and
// the environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Configuration file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/auction-ledger/")

	bindEnv(v)

	// Read configuration file (optional - will use defaults/env vars if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults and environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if !storeDrivers[c.Store.Driver] {
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if !lockDrivers[c.Lock.Driver] {
		return fmt.Errorf("unknown lock driver %q", c.Lock.Driver)
	}
	if c.Lock.Driver == "redis" && !c.Redis.Enabled {
		return errors.New("lock driver redis requires redis.enabled")
	}
	if c.Lock.TTL <= 0 {
		return errors.New("lock.ttl must be positive")
	}
	if c.Closer.Enabled && c.Closer.Spec == "" {
		return errors.New("closer.spec required when closer is enabled")
	}
	return nil
}

// GetConfigString returns a formatted string representation of the config
func (c *Config) GetConfigString() string {
	return fmt.Sprintf(
		"Server: %s:%d, Store: %s, Lock: %s, Redis: %t (%s), Closer: %t (%s), Instance: %s",
		c.Server.Host,
		c.Server.Port,
		c.Store.Driver,
		c.Lock.Driver,
		c.Redis.Enabled,
		c.Redis.Address,
		c.Closer.Enabled,
		c.Closer.Spec,
		c.Instance.ID,
	)
}
