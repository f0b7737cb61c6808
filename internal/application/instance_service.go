package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/ports"
)

// OperationGuard reports whether a lifecycle operation is running.
type OperationGuard interface {
	Busy() bool
}

// InstanceService edits the persisted agent selection.
type InstanceService struct {
	repo  ports.InstanceRepository
	clock ports.Clock
	guard OperationGuard
}

func NewInstanceService(repo ports.InstanceRepository, clock ports.Clock, guard OperationGuard) *InstanceService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &InstanceService{repo: repo, clock: clock, guard: guard}
}

func (s *InstanceService) Get(ctx context.Context) (domain.AgentInstance, error) {
	instance, err := s.repo.Get(ctx)
	if err != nil {
		return domain.AgentInstance{}, fmt.Errorf("load agent instance: %w", err)
	}
	return instance, nil
}

// SelectAgent records the agent type, home network and staking program. Once
// the backend created a service only the staking program may change, and
// only through migrate.
func (s *InstanceService) SelectAgent(ctx context.Context, cmd SelectAgentCommand) (domain.AgentInstance, error) {
	if err := s.checkIdle(domain.ActionStart); err != nil {
		return domain.AgentInstance{}, err
	}

	instance, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrInstanceNotFound) {
		return domain.AgentInstance{}, fmt.Errorf("load agent instance: %w", err)
	}

	if instance.HasService() {
		if instance.AgentType != cmd.AgentType || instance.HomeNetwork != cmd.HomeNetwork {
			return domain.AgentInstance{}, fmt.Errorf("service %s already created for %s on %s: %w",
				instance.ConfigID, instance.AgentType, instance.HomeNetwork, domain.ErrInvalidTransition)
		}
		if instance.StakingProgram != cmd.StakingProgram {
			return domain.AgentInstance{}, fmt.Errorf("service %s already created, use migrate to change staking program: %w",
				instance.ConfigID, domain.ErrInvalidTransition)
		}
	}

	instance.AgentType = cmd.AgentType
	instance.HomeNetwork = cmd.HomeNetwork
	instance.StakingProgram = cmd.StakingProgram
	instance.UpdatedAt = s.clock.Now()
	if err := instance.Validate(); err != nil {
		return domain.AgentInstance{}, err
	}

	if err := s.repo.Save(ctx, instance); err != nil {
		return domain.AgentInstance{}, fmt.Errorf("save agent instance: %w", err)
	}
	return instance, nil
}

// SelectStakingProgram changes the program before the first start.
func (s *InstanceService) SelectStakingProgram(ctx context.Context, program domain.ProgramID) (domain.AgentInstance, error) {
	if err := s.checkIdle(domain.ActionMigrate); err != nil {
		return domain.AgentInstance{}, err
	}

	instance, err := s.repo.Get(ctx)
	if err != nil {
		return domain.AgentInstance{}, fmt.Errorf("load agent instance: %w", err)
	}
	if instance.HasService() {
		return domain.AgentInstance{}, fmt.Errorf("service %s already created, use migrate to change staking program: %w",
			instance.ConfigID, domain.ErrInvalidTransition)
	}

	instance.StakingProgram = program
	instance.UpdatedAt = s.clock.Now()
	if err := instance.Validate(); err != nil {
		return domain.AgentInstance{}, err
	}

	if err := s.repo.Save(ctx, instance); err != nil {
		return domain.AgentInstance{}, fmt.Errorf("save agent instance: %w", err)
	}
	return instance, nil
}

func (s *InstanceService) checkIdle(action domain.Action) error {
	if s.guard != nil && s.guard.Busy() {
		return &domain.TransitionError{Action: action, InFlight: true}
	}
	return nil
}
