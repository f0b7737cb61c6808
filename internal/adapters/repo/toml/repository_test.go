package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/agentctl/internal/domain"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	instancePath := filepath.Join(t.TempDir(), "nested", "instance.toml")
	config := viper.New()
	config.Set(InstancePathKey, instancePath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo, instancePath
}

func TestRepositoryGetWithoutFileReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	_, err := repo.Get(context.Background())

	require.ErrorIs(t, err, domain.ErrInstanceNotFound)
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, instancePath := newTestRepository(t)
	instance := domain.AgentInstance{
		ConfigID:       "sc-1",
		AgentType:      "trader",
		HomeNetwork:    "gnosis",
		StakingProgram: "alpha",
		UpdatedAt:      time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), instance))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, instance, got)

	info, err := os.Stat(instancePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(instanceFileMode), info.Mode().Perm())

	data, err := os.ReadFile(instancePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[instance]")
	assert.Contains(t, string(data), "staking_program")
}

func TestRepositorySaveOverwritesPreviousInstance(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	first := domain.AgentInstance{AgentType: "trader", HomeNetwork: "gnosis", StakingProgram: "alpha"}
	second := first
	second.ConfigID = "sc-2"
	second.StakingProgram = "beta"

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestRepositorySaveRejectsInvalidInstance(t *testing.T) {
	t.Parallel()

	repo, instancePath := newTestRepository(t)

	err := repo.Save(context.Background(), domain.AgentInstance{AgentType: "trader"})

	require.Error(t, err)
	_, statErr := os.Stat(instancePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRepositoryRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	repo, instancePath := newTestRepository(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(instancePath), 0o700))
	require.NoError(t, os.WriteFile(instancePath, []byte("version = 2\n"), 0o600))

	_, err := repo.Get(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported instance schema version 2")
}

func TestRepositoryHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Save(ctx, domain.AgentInstance{}), context.Canceled)
	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepositoriesShareLockPerPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "instance.toml")
	config := viper.New()
	config.Set(InstancePathKey, path)

	first, err := NewRepository(config)
	require.NoError(t, err)
	second, err := NewRepository(config)
	require.NoError(t, err)

	assert.Same(t, first.mu, second.mu)
	assert.Equal(t, path, first.Path())
}
