package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	GRPCPort         int           `mapstructure:"grpc_port"`
	HTTPPort         int           `mapstructure:"http_port"`
	NumStreamWorkers int           `mapstructure:"num_stream_workers"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver       string        `mapstructure:"driver"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the optional YAML file at path, then LIBRARY_* environment
// variables (LIBRARY_MYSQL_DSN overrides mysql.dsn).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.num_stream_workers", 10)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.driver", DriverMySQL)
	v.SetDefault("storage.query_timeout", 5*time.Second)

	v.SetDefault("mysql.dsn", "root:root@tcp(localhost:3306)/library")
	v.SetDefault("mysql.max_open_conns", 50)
	v.SetDefault("mysql.max_idle_conns", 25)
	v.SetDefault("mysql.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("mysql.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 100)
	v.SetDefault("redis.key_prefix", "library:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func (c *Config) Validate() error {
	if err := validPort("server.grpc_port", c.Server.GRPCPort); err != nil {
		return err
	}
	if err := validPort("server.http_port", c.Server.HTTPPort); err != nil {
		return err
	}
	if c.Server.GRPCPort == c.Server.HTTPPort {
		return fmt.Errorf("server.grpc_port and server.http_port must differ")
	}
	if c.Server.NumStreamWorkers < 0 {
		return fmt.Errorf("server.num_stream_workers must not be negative")
	}
	if c.Storage.QueryTimeout <= 0 {
		return fmt.Errorf("storage.query_timeout must be positive")
	}

	switch c.Storage.Driver {
	case DriverMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn is required for the mysql driver")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}

func (c *ServerConfig) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c *ServerConfig) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func validPort(name string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid %s: %d", name, port)
	}
	return nil
}
