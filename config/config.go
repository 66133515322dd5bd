// Package config loads the per-process engine configuration,
// YAML first (mirroring dolthub/go-mysql-server's own dependency on
// gopkg.in/yaml.v2), then overlaid with the named environment variables.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

const (
	defaultMaxCacheEvictions    = 25
	defaultLocalBufferPoolSize  = 256
	defaultPageSizeBytes  int64 = 64 * 1024 * 1024 // 64 MiB
)

// Config is the per-process engine configuration.
type Config struct {
	DatasetPrefixMapping   map[string]string `yaml:"dataset_prefix_mapping"`
	PartitionScheme        string            `yaml:"partition_scheme"`
	MaxCacheEvictions      int               `yaml:"max_cache_evictions"`
	MaxSizeSingleCacheItem int64             `yaml:"max_size_single_cache_item"`
	LocalBufferPoolSize    int               `yaml:"local_buffer_pool_size"`
	PageSize               int64             `yaml:"page_size"`

	Debug           bool   `yaml:"-"`
	GCPProjectID    string `yaml:"-"`
	MemcachedServer string `yaml:"-"`
	MinioEndPoint   string `yaml:"-"`
	MinioAccessKey  string `yaml:"-"`
	MinioSecretKey  string `yaml:"-"`
	MinioSecure     bool   `yaml:"-"`
}

// Default returns the configuration with the defaults applied.
func Default() *Config {
	return &Config{
		DatasetPrefixMapping:   map[string]string{},
		MaxCacheEvictions:      defaultMaxCacheEvictions,
		LocalBufferPoolSize:    defaultLocalBufferPoolSize,
		PageSize:               defaultPageSizeBytes,
	}
}

// Load reads YAML configuration from path (if non-empty) over the defaults,
// then overlays the named environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if cfg.MaxCacheEvictions <= 0 {
		cfg.MaxCacheEvictions = defaultMaxCacheEvictions
	}
	if cfg.LocalBufferPoolSize <= 0 {
		cfg.LocalBufferPoolSize = defaultLocalBufferPoolSize
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSizeBytes
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("ENGINE_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v, ok := os.LookupEnv("GCP_PROJECT_ID"); ok {
		c.GCPProjectID = v
	}
	if v, ok := os.LookupEnv("MEMCACHED_SERVER"); ok {
		c.MemcachedServer = v
	}
	if v, ok := os.LookupEnv("MINIO_END_POINT"); ok {
		c.MinioEndPoint = v
	}
	if v, ok := os.LookupEnv("MINIO_ACCESS_KEY"); ok {
		c.MinioAccessKey = v
	}
	if v, ok := os.LookupEnv("MINIO_SECRET_KEY"); ok {
		c.MinioSecretKey = v
	}
	if v, ok := os.LookupEnv("MINIO_SECURE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.MinioSecure = b
		}
	}
}
