package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	TopologySourceFile  = "file"
	TopologySourceMongo = "mongo"
)

type Config struct {
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	GrpcPort          string        `mapstructure:"GRPC_PORT"`
	RedisUrl          string        `mapstructure:"REDIS_URL"`
	MongoUri          string        `mapstructure:"MONGO_URI"`
	MongoDatabase     string        `mapstructure:"MONGO_DATABASE"`
	TopologySource    string        `mapstructure:"TOPOLOGY_SOURCE"`
	TopologyDir       string        `mapstructure:"TOPOLOGY_DIR"`
	IsLocalCors       bool          `mapstructure:"LOCAL_CORS"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	BranchMinSize     int           `mapstructure:"BRANCH_MIN_SIZE"`
	BranchMaxSize     int           `mapstructure:"BRANCH_MAX_SIZE"`
	PartitionCacheTTL time.Duration `mapstructure:"PARTITION_CACHE_TTL"`
}

var configKeys = map[string]any{
	"SERVER_PORT":         "8080",
	"GRPC_PORT":           "8082",
	"REDIS_URL":           "",
	"MONGO_URI":           "",
	"MONGO_DATABASE":      "talents",
	"TOPOLOGY_SOURCE":     TopologySourceFile,
	"TOPOLOGY_DIR":        "data/topology",
	"LOCAL_CORS":          false,
	"LOG_LEVEL":           "info",
	"BRANCH_MIN_SIZE":     10,
	"BRANCH_MAX_SIZE":     25,
	"PARTITION_CACHE_TTL": 24 * time.Hour,
}

// Setup reads cfgPath (a .env style file) when it exists and lets
// environment variables override it.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, def := range configKeys {
		v.SetDefault(key, def)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
