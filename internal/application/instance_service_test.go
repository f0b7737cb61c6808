package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/agentctl/internal/domain"
)

type busyGuard bool

func (g busyGuard) Busy() bool {
	return bool(g)
}

func TestInstanceServiceSelectAgentCreatesInstance(t *testing.T) {
	t.Parallel()

	repo := newInstanceRepo(nil)
	svc := NewInstanceService(repo, fixedClock{now: testNow}, busyGuard(false))

	instance, err := svc.SelectAgent(context.Background(), SelectAgentCommand{
		AgentType:      "trader",
		HomeNetwork:    homeNetwork,
		StakingProgram: programB,
	})
	require.NoError(t, err)
	assert.Equal(t, testNow, instance.UpdatedAt)
	assert.Equal(t, instance, repo.current())
}

func TestInstanceServiceSelectAgentValidates(t *testing.T) {
	t.Parallel()

	svc := NewInstanceService(newInstanceRepo(nil), nil, nil)

	_, err := svc.SelectAgent(context.Background(), SelectAgentCommand{AgentType: "trader", HomeNetwork: homeNetwork})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staking program is required")
}

func TestInstanceServiceSelectAgentLockedAfterServiceCreated(t *testing.T) {
	t.Parallel()

	repo := newInstanceRepo(deployedInstance(programA))
	svc := NewInstanceService(repo, fixedClock{now: testNow}, nil)

	_, err := svc.SelectAgent(context.Background(), SelectAgentCommand{AgentType: "trader", HomeNetwork: "base", StakingProgram: programA})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.SelectAgent(context.Background(), SelectAgentCommand{AgentType: "trader", HomeNetwork: homeNetwork, StakingProgram: programB})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "use migrate")

	instance, err := svc.SelectAgent(context.Background(), SelectAgentCommand{AgentType: "trader", HomeNetwork: homeNetwork, StakingProgram: programA})
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigID("sc-1"), instance.ConfigID)
}

func TestInstanceServiceSelectStakingProgram(t *testing.T) {
	t.Parallel()

	repo := newInstanceRepo(freshInstance())
	svc := NewInstanceService(repo, fixedClock{now: testNow}, busyGuard(false))

	instance, err := svc.SelectStakingProgram(context.Background(), programA)
	require.NoError(t, err)
	assert.Equal(t, programA, instance.StakingProgram)
	assert.Equal(t, programA, repo.current().StakingProgram)
}

func TestInstanceServiceSelectStakingProgramRejected(t *testing.T) {
	t.Parallel()

	svc := NewInstanceService(newInstanceRepo(deployedInstance(programA)), nil, nil)
	_, err := svc.SelectStakingProgram(context.Background(), programB)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	busy := NewInstanceService(newInstanceRepo(freshInstance()), nil, busyGuard(true))
	_, err = busy.SelectStakingProgram(context.Background(), programA)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	missing := NewInstanceService(newInstanceRepo(nil), nil, nil)
	_, err = missing.SelectStakingProgram(context.Background(), programA)
	require.ErrorIs(t, err, domain.ErrInstanceNotFound)
}
