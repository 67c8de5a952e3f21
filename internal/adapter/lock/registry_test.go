package lock_test

import (
	"testing"

	"github.com/srgjo27/seat_reservation/internal/adapter/lock"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	local := lock.NewLocalLocker()
	registry := lock.NewRegistry("local")
	registry.Register(lock.StrategyLocal, local)

	name, locker, err := registry.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, lock.StrategyLocal, name)
	assert.Same(t, local, locker)

	name, _, err = registry.Resolve(" local ")
	require.NoError(t, err)
	assert.Equal(t, lock.StrategyLocal, name)

	_, _, err = registry.Resolve("zookeeper")
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
	assert.ErrorContains(t, err, "LOCAL")
}

func TestRegistry_ResolveKnownButUnconfigured(t *testing.T) {
	registry := lock.NewRegistry(lock.StrategyRedis)
	registry.Register(lock.StrategyLocal, lock.NewLocalLocker())

	for _, strategy := range []string{"REDIS", "database", ""} {
		_, _, err := registry.Resolve(strategy)
		assert.ErrorIs(t, err, domain.ErrStrategyDisabled, strategy)
		assert.NotErrorIs(t, err, domain.ErrUnknownStrategy, strategy)
		assert.ErrorContains(t, err, "not configured on this instance")
	}
}

func TestRegistry_StrategiesSorted(t *testing.T) {
	registry := lock.NewRegistry(lock.StrategyRedis)
	registry.Register(lock.StrategyRedis, lock.NewLocalLocker())
	registry.Register(lock.StrategyLocal, lock.NewLocalLocker())

	assert.Equal(t, []string{"LOCAL", "REDIS"}, registry.Strategies())

	registry.SetDefault("local")
	assert.Equal(t, lock.StrategyLocal, registry.Default())
}
