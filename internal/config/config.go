package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Chunking  ChunkingConfig  `yaml:"chunking" mapstructure:"chunking"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Neo4j     Neo4jConfig     `yaml:"neo4j" mapstructure:"neo4j"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for extraction.
type AnthropicConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	Model          string  `yaml:"model" mapstructure:"model"`
	MaxTokens      int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float64 `yaml:"temperature" mapstructure:"temperature"`
	RequestsPerMin int     `yaml:"requests_per_min" mapstructure:"requests_per_min"`
}

// ChunkingConfig controls how documents are split before extraction.
type ChunkingConfig struct {
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`
	Overlap   int `yaml:"overlap" mapstructure:"overlap"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxWorkers   int      `yaml:"max_workers" mapstructure:"max_workers"`
	FilePatterns []string `yaml:"file_patterns" mapstructure:"file_patterns"`
}

// ExportConfig selects default export formats.
type ExportConfig struct {
	Formats []string `yaml:"formats" mapstructure:"formats"`
}

// Neo4jConfig configures the optional Neo4j import.
type Neo4jConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	URI           string        `yaml:"uri" mapstructure:"uri"`
	User          string        `yaml:"user" mapstructure:"user"`
	Password      string        `yaml:"password" mapstructure:"password"`
	Database      string        `yaml:"database" mapstructure:"database"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	BatchSize     int           `yaml:"batch_size" mapstructure:"batch_size"`
	ClearExisting bool          `yaml:"clear_existing" mapstructure:"clear_existing"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("KGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "kgraph.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.temperature", 0.2)
	v.SetDefault("anthropic.requests_per_min", 60)
	v.SetDefault("chunking.chunk_size", 500)
	v.SetDefault("chunking.overlap", 50)
	v.SetDefault("batch.max_workers", 2)
	v.SetDefault("batch.file_patterns", []string{"*.txt", "*.md"})
	v.SetDefault("export.formats", []string{"json", "csv", "graphml"})
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("neo4j.database", "")
	v.SetDefault("neo4j.timeout", 10*time.Second)
	v.SetDefault("neo4j.batch_size", 1000)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
