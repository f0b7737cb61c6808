package store

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/metrics"
)

func TestSnapshotReplaceAndGet(t *testing.T) {
	s := NewSnapshot[domain.DeploymentStatus](KindDeployment, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, ok := s.Get()
	require.False(t, ok)

	s.SetErr(errors.New("timeout"))
	s.Replace(domain.DeploymentStatusDeployed, now)

	status, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, domain.DeploymentStatusDeployed, status)
	assert.Equal(t, now, s.ObservedAt())
	assert.NoError(t, s.Err())
}

func TestSnapshotErrKeepsPreviousValue(t *testing.T) {
	s := NewSnapshot[domain.DeploymentStatus](KindDeployment, nil)
	s.Replace(domain.DeploymentStatusStopped, time.Unix(100, 0))

	fetchErr := errors.New("connection refused")
	s.SetErr(fetchErr)

	status, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, domain.DeploymentStatusStopped, status)
	assert.ErrorIs(t, s.Err(), fetchErr)
}

func TestSnapshotClearResetsToUnknown(t *testing.T) {
	s := NewSnapshot[domain.DeploymentStatus](KindDeployment, nil)
	s.Replace(domain.DeploymentStatusStopped, time.Unix(100, 0))

	var notified []Kind
	s.Subscribe(func(kind Kind) { notified = append(notified, kind) })
	s.Clear()

	_, ok := s.Get()
	assert.False(t, ok)
	assert.True(t, s.ObservedAt().IsZero())
	assert.Equal(t, []Kind{KindDeployment}, notified)
}

func TestSnapshotSubscribeAndUnsubscribe(t *testing.T) {
	s := NewSnapshot[domain.DeploymentStatus](KindDeployment, nil)

	var first, second int
	cancelFirst := s.Subscribe(func(Kind) { first++ })
	s.Subscribe(func(Kind) { second++ })

	s.Replace(domain.DeploymentStatusDeploying, time.Unix(1, 0))
	cancelFirst()
	cancelFirst()
	s.Replace(domain.DeploymentStatusDeployed, time.Unix(2, 0))

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestSnapshotListenerMayReadStore(t *testing.T) {
	s := NewSnapshot[domain.DeploymentStatus](KindDeployment, nil)

	var seen domain.DeploymentStatus
	s.Subscribe(func(Kind) {
		seen, _ = s.Get()
	})
	s.Replace(domain.DeploymentStatusDeployed, time.Unix(1, 0))

	assert.Equal(t, domain.DeploymentStatusDeployed, seen)
}

func TestStakingSnapshotIsCopiedOnReplace(t *testing.T) {
	stores := New(nil)
	programs := domain.StakingPrograms{
		"pearl_beta": {ID: "pearl_beta", MaxSlots: 10},
	}

	stores.Staking.Replace(programs, time.Unix(1, 0))
	programs["pearl_alpha"] = domain.StakingProgramState{ID: "pearl_alpha"}

	got, ok := stores.Staking.Get()
	require.True(t, ok)
	assert.Len(t, got, 1)

	got["injected"] = domain.StakingProgramState{}
	again, _ := stores.Staking.Get()
	assert.Len(t, again, 1)
}

func TestStakingSnapshotSharesNoNestedValues(t *testing.T) {
	stores := New(nil)
	stores.Staking.Replace(domain.StakingPrograms{
		"pearl_beta": {
			ID:            "pearl_beta",
			RequiredStake: map[domain.Token]decimal.Decimal{domain.TokenOLAS: decimal.NewFromInt(100)},
			Agent:         &domain.StakingRecord{Staked: true},
			MigratableTo:  []domain.ProgramID{"pearl_alpha"},
		},
	}, time.Unix(1, 0))

	got, _ := stores.Staking.Get()
	program := got["pearl_beta"]
	program.RequiredStake[domain.TokenOLAS] = decimal.Zero
	program.Agent.Evicted = true
	program.MigratableTo[0] = "pearl_gamma"

	again, _ := stores.Staking.Get()
	stored := again["pearl_beta"]
	assert.True(t, decimal.NewFromInt(100).Equal(stored.RequiredStake[domain.TokenOLAS]))
	assert.False(t, stored.Agent.Evicted)
	assert.Equal(t, []domain.ProgramID{"pearl_alpha"}, stored.MigratableTo)
}

func TestStoresDispatchByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	stores := New(metrics.New(reg))

	var kinds []Kind
	cancel := stores.SubscribeAll(func(kind Kind) { kinds = append(kinds, kind) })

	balances, err := domain.NewBalanceSet([]domain.BalanceSnapshot{
		{Network: "gnosis", Token: domain.TokenOLAS, Amount: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	stores.Deployment.Replace(domain.DeploymentStatusDeployed, time.Unix(5, 0))
	stores.Balances.Replace(balances, time.Unix(6, 0))
	stores.Staking.Replace(domain.StakingPrograms{}, time.Unix(7, 0))
	stores.Balances.SetErr(errors.New("rpc down"))
	stores.Clear(KindStaking)
	cancel()
	stores.Deployment.Replace(domain.DeploymentStatusStopped, time.Unix(8, 0))

	assert.Equal(t, []Kind{KindDeployment, KindBalances, KindStaking, KindStaking}, kinds)
	assert.Error(t, stores.Err(KindBalances))
	assert.NoError(t, stores.Err(KindDeployment))
	assert.Equal(t, time.Unix(6, 0), stores.ObservedAt(KindBalances))

	snapshot, ok := stores.DeploymentSnapshot()
	require.True(t, ok)
	assert.Equal(t, domain.DeploymentSnapshot{Status: domain.DeploymentStatusStopped, ObservedAt: time.Unix(8, 0)}, snapshot)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "agentctl_store_replacements_total", families[0].GetName())
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("balances")
	require.True(t, ok)
	assert.Equal(t, KindBalances, kind)

	_, ok = ParseKind("wallets")
	assert.False(t, ok)
}

func TestStoresLoaded(t *testing.T) {
	stores := New(nil)
	assert.False(t, stores.Loaded(KindStaking))

	stores.Staking.Replace(nil, time.Unix(1, 0))
	assert.True(t, stores.Loaded(KindStaking))
	assert.False(t, stores.Loaded(Kind("wallets")))
}
