package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	require := require.New(t)
	cfg := Default()
	require.Equal(25, cfg.MaxCacheEvictions)
	require.Equal(256, cfg.LocalBufferPoolSize)
	require.EqualValues(64*1024*1024, cfg.PageSize)
}

func TestLoadAppliesEnv(t *testing.T) {
	require := require.New(t)
	t.Setenv("ENGINE_DEBUG", "true")
	t.Setenv("MINIO_SECURE", "false")
	t.Setenv("GCP_PROJECT_ID", "proj-1")

	cfg, err := Load("")
	require.NoError(err)
	require.True(cfg.Debug)
	require.False(cfg.MinioSecure)
	require.Equal("proj-1", cfg.GCPProjectID)
}

func TestLoadYAMLOverlay(t *testing.T) {
	require := require.New(t)
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	require.NoError(err)
	_, err = f.WriteString("partition_scheme: hive\nmax_cache_evictions: 5\n")
	require.NoError(err)
	require.NoError(f.Close())

	cfg, err := Load(f.Name())
	require.NoError(err)
	require.Equal("hive", cfg.PartitionScheme)
	require.Equal(5, cfg.MaxCacheEvictions)
}
